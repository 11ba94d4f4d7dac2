package domain

import "fmt"

const unknownDescription = "Unknown"

// Default values applied when a setting is absent.
const (
	DefaultHeaderProperty  = "header"
	DefaultContentProperty = "content"
	DefaultDateProperty    = "date"
	DefaultPageSize        = 100
	DefaultTruncateLength  = 70
	DefaultServerAddr      = ":8080"
)

// SortDirection orders query results by the date property.
type SortDirection string

// Available sort directions.
const (
	// SortNone keeps the database's own ordering.
	SortNone SortDirection = ""

	// SortAscending orders events oldest first.
	SortAscending SortDirection = "ascending"

	// SortDescending orders events newest first.
	SortDescending SortDirection = "descending"
)

// IsValid returns true if the sort direction is recognised.
func (d SortDirection) IsValid() bool {
	switch d {
	case SortNone, SortAscending, SortDescending:
		return true
	default:
		return false
	}
}

// ServeMode selects where the web server gets events from.
type ServeMode string

// Available serve modes.
const (
	// ServeModeLive fetches from Notion on every request.
	ServeModeLive ServeMode = "live"

	// ServeModeCached serves the latest stored snapshot.
	ServeModeCached ServeMode = "cached"
)

// IsValid returns true if the serve mode is recognised.
func (m ServeMode) IsValid() bool {
	return m == ServeModeLive || m == ServeModeCached
}

// Description returns a human-readable description of the mode.
func (m ServeMode) Description() string {
	switch m {
	case ServeModeLive:
		return "Live (fetch on every request)"
	case ServeModeCached:
		return "Cached (serve latest snapshot)"
	default:
		return unknownDescription
	}
}

// NotionSettings holds the Notion source configuration.
type NotionSettings struct {
	// Secret is the integration token.
	Secret string

	// DatabaseID identifies the events database.
	DatabaseID string

	HeaderProperty  string
	ContentProperty string
	DateProperty    string

	// PageSize is the number of results requested per query page.
	PageSize int

	Sort SortDirection
}

// IsConfigured returns true if both required values are present.
func (n NotionSettings) IsConfigured() bool {
	return n.Secret != "" && n.DatabaseID != ""
}

// DisplaySettings controls event formatting.
type DisplaySettings struct {
	// TruncateLength is the visible-character budget for collapsed events.
	TruncateLength int
}

// ServerSettings configures the web adapter.
type ServerSettings struct {
	Addr string
	Mode ServeMode
}

// SyncSettings configures scheduled refreshes.
type SyncSettings struct {
	// Schedule is a cron spec; empty disables scheduled refreshes.
	Schedule string
}

// Settings is the resolved application configuration.
type Settings struct {
	Notion  NotionSettings
	Display DisplaySettings
	Server  ServerSettings
	Sync    SyncSettings
}

// DefaultSettings returns settings with every optional value filled in.
func DefaultSettings() Settings {
	return Settings{
		Notion: NotionSettings{
			HeaderProperty:  DefaultHeaderProperty,
			ContentProperty: DefaultContentProperty,
			DateProperty:    DefaultDateProperty,
			PageSize:        DefaultPageSize,
		},
		Display: DisplaySettings{TruncateLength: DefaultTruncateLength},
		Server:  ServerSettings{Addr: DefaultServerAddr, Mode: ServeModeLive},
	}
}

// Validate checks the settings required for fetching.
func (s Settings) Validate() error {
	if !s.Notion.IsConfigured() {
		return ErrConfigMissing
	}
	if !s.Notion.Sort.IsValid() {
		return fmt.Errorf("%w: unknown sort direction %q", ErrInvalidInput, s.Notion.Sort)
	}
	if !s.Server.Mode.IsValid() {
		return fmt.Errorf("%w: unknown serve mode %q", ErrInvalidInput, s.Server.Mode)
	}
	return nil
}
