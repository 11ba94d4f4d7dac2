package notion

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
	"github.com/custodia-labs/eventbox/internal/logger"
)

// SourceType identifies the Notion event source.
const SourceType = "notion"

// Ensure Connector implements the interface.
var _ driven.EventSource = (*Connector)(nil)

// Connector fetches events from a Notion database.
type Connector struct {
	mu        sync.Mutex
	client    *Client
	secret    string
	newClient func(secret string) *Client
}

// New creates a Notion event source.
func New() *Connector {
	return &Connector{newClient: NewClient}
}

// Type returns the source type identifier.
func (c *Connector) Type() string {
	return SourceType
}

// Fetch queries the database and maps every page to an event.
func (c *Connector) Fetch(ctx context.Context, settings domain.NotionSettings) ([]domain.Event, error) {
	cfg, err := ParseConfig(settings)
	if err != nil {
		return nil, err
	}

	records, err := c.clientFor(cfg.Secret).QueryAll(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	events := make([]domain.Event, 0, len(records))
	for i := range records {
		events = append(events, RecordToEvent(&records[i], cfg))
	}

	logger.Debug("notion: fetched %d events [%s]", len(events), joinHeaders(events, 5))
	return events, nil
}

// clientFor returns a client for secret, reusing it while the secret is unchanged.
// The client and its rate limiter live until the secret changes.
func (c *Connector) clientFor(secret string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil || c.secret != secret {
		c.client = c.newClient(secret)
		c.secret = secret
	}
	return c.client
}
