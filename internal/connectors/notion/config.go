package notion

import (
	"strings"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// Config holds the parsed configuration for a Notion events database.
type Config struct {
	Secret     string
	DatabaseID notionapi.DatabaseID

	// HeaderProperty names the title property.
	HeaderProperty string
	// ContentProperty names the rich text property.
	ContentProperty string
	// DateProperty names the date property; it is also the sort key.
	DateProperty string

	// PageSize is the page size for query requests (max 100).
	PageSize int

	Sort domain.SortDirection
}

// ParseConfig builds a Config from settings.
// Returns domain.ErrConfigMissing if the secret or database ID is empty.
func ParseConfig(settings domain.NotionSettings) (*Config, error) {
	secret := strings.TrimSpace(settings.Secret)
	databaseID := strings.TrimSpace(settings.DatabaseID)
	if secret == "" || databaseID == "" {
		return nil, domain.ErrConfigMissing
	}

	cfg := &Config{
		Secret:          secret,
		DatabaseID:      notionapi.DatabaseID(databaseID),
		HeaderProperty:  orDefault(settings.HeaderProperty, domain.DefaultHeaderProperty),
		ContentProperty: orDefault(settings.ContentProperty, domain.DefaultContentProperty),
		DateProperty:    orDefault(settings.DateProperty, domain.DefaultDateProperty),
		PageSize:        settings.PageSize,
		Sort:            settings.Sort,
	}

	if cfg.PageSize <= 0 || cfg.PageSize > maxPageSize {
		cfg.PageSize = maxPageSize
	}
	if !cfg.Sort.IsValid() {
		cfg.Sort = domain.SortNone
	}

	return cfg, nil
}

// QueryRequest returns the first-page query for the database.
func (c *Config) QueryRequest() *notionapi.DatabaseQueryRequest {
	req := &notionapi.DatabaseQueryRequest{PageSize: c.PageSize}
	if c.Sort != domain.SortNone {
		req.Sorts = []notionapi.SortObject{{
			Property:  c.DateProperty,
			Direction: notionapi.SortOrder(c.Sort),
		}}
	}
	return req
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
