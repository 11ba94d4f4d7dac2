package notion

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// Notion-specific errors.
var (
	// ErrUnauthorized indicates an invalid or revoked integration token.
	ErrUnauthorized = errors.New("notion: unauthorised (invalid integration token)")

	// ErrDatabaseNotFound indicates the database does not exist or is not
	// shared with the integration.
	ErrDatabaseNotFound = errors.New("notion: database not found or not shared with the integration")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = fmt.Errorf("notion: %w", domain.ErrRateLimited)
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	return statusOf(err) == http.StatusUnauthorized
}

// IsNotFound returns true if the error indicates a missing database.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrDatabaseNotFound) {
		return true
	}
	return statusOf(err) == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	return statusOf(err) == http.StatusTooManyRequests
}

// WrapError converts a Notion API error to a more specific error.
// The original message is kept after the sentinel.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	switch statusOf(err) {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrDatabaseNotFound, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return err
	}
}

// statusOf returns the HTTP status carried by a Notion API error, or 0.
// notionapi reports an exhausted 429 as RateLimitedError rather than Error.
func statusOf(err error) int {
	var nerr *notionapi.Error
	if errors.As(err, &nerr) {
		return nerr.Status
	}
	var rerr *notionapi.RateLimitedError
	if errors.As(err, &rerr) {
		return http.StatusTooManyRequests
	}
	return 0
}
