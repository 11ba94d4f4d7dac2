package notion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/eventbox/internal/logger"
)

const (
	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxPageSize is the largest page size the API accepts.
	maxPageSize = 100

	// maxPages stops runaway pagination.
	maxPages = 1000
)

// databaseQuerier is the part of notionapi.DatabaseService the client uses.
type databaseQuerier interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// Client wraps the notionapi client with pacing and pagination.
type Client struct {
	db          databaseQuerier
	rateLimiter *RateLimiter
}

// Record is a database page together with its date starts as sent by the
// API, keyed by property name.
type Record struct {
	Page       notionapi.Page
	DateStarts map[string]string
}

// NewClient creates a Notion API client for an integration token.
func NewClient(secret string) *Client {
	return newTransportClient(secret, http.DefaultTransport, NewRateLimiter())
}

// newTransportClient builds a client over rt. notionapi retries are capped
// at one attempt so a 429 surfaces at once and the limiter owns backoff.
func newTransportClient(secret string, rt http.RoundTripper, limiter *RateLimiter) *Client {
	api := notionapi.NewClient(
		notionapi.Token(secret),
		notionapi.WithHTTPClient(&http.Client{
			Timeout:   DefaultTimeout,
			Transport: &recordingTransport{base: rt},
		}),
		notionapi.WithRetry(1),
	)
	return newClientWith(api.Database, limiter)
}

func newClientWith(db databaseQuerier, limiter *RateLimiter) *Client {
	return &Client{db: db, rateLimiter: limiter}
}

// QueryAll returns every page of the database, following pagination.
func (c *Client) QueryAll(ctx context.Context, cfg *Config) ([]Record, error) {
	req := cfg.QueryRequest()

	var records []Record
	for page := 0; page < maxPages; page++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		rec := &responseRecorder{}
		resp, err := c.db.Query(withRecorder(ctx, rec), cfg.DatabaseID, req)
		if err != nil {
			if IsRateLimited(err) {
				c.rateLimiter.Backoff(rec.retryAfter)
			}
			return nil, fmt.Errorf("query database: %w", WrapError(err))
		}

		starts := rec.dateStarts()
		for _, p := range resp.Results {
			records = append(records, Record{Page: p, DateStarts: starts[p.ID]})
		}
		logger.Debug("notion: page %d returned %d results (has_more=%t)", page+1, len(resp.Results), resp.HasMore)

		if !resp.HasMore || resp.NextCursor == "" {
			return records, nil
		}
		req.StartCursor = resp.NextCursor
	}

	return records, fmt.Errorf("query database: more than %d result pages", maxPages)
}
