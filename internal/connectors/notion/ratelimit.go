package notion

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// RequestsPerSecond is Notion's documented average request rate.
	RequestsPerSecond = 3.0

	// BurstSize allows short bursts above the average rate.
	BurstSize = 3

	// DefaultBackoff is used when a 429 response carries no Retry-After.
	DefaultBackoff = 30 * time.Second
)

// RateLimiter paces Notion API requests.
// It uses a token bucket with a backoff window after 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter with Notion's default limits.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithRate(RequestsPerSecond, BurstSize)
}

// NewRateLimiterWithRate creates a rate limiter with a custom rate.
func NewRateLimiterWithRate(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until a request can be made.
// It honours any backoff set by Backoff before taking a token.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		timer := time.NewTimer(time.Until(retryAt))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// Backoff delays further requests by d.
// A non-positive d uses DefaultBackoff.
func (r *RateLimiter) Backoff(d time.Duration) {
	if d <= 0 {
		d = DefaultBackoff
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(d)
}

// Allow reports whether a request may be made immediately.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
