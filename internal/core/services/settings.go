package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyNotionSecret          = "notion.secret"
	KeyNotionDatabaseID      = "notion.database_id"
	KeyNotionHeaderProperty  = "notion.header_property"
	KeyNotionContentProperty = "notion.content_property"
	KeyNotionDateProperty    = "notion.date_property"
	KeyNotionPageSize        = "notion.page_size"
	KeyNotionSort            = "notion.sort"
	KeyDisplayTruncate       = "display.truncate_length"
	KeyServerAddr            = "server.addr"
	KeyServerMode            = "server.mode"
	KeySyncSchedule          = "sync.schedule"
)

// Environment variables consulted when the matching key is empty.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvNotionSecret     = "NOTION_SECRET"
	EnvNotionDatabaseID = "NOTION_DATABASE_ID"
)

// keyKind describes how a raw value is parsed and checked.
type keyKind int

const (
	kindString keyKind = iota
	kindPositiveInt
	kindNonNegativeInt
	kindSort
	kindMode
	kindCron
)

var knownKeys = map[string]keyKind{
	KeyNotionSecret:          kindString,
	KeyNotionDatabaseID:      kindString,
	KeyNotionHeaderProperty:  kindString,
	KeyNotionContentProperty: kindString,
	KeyNotionDateProperty:    kindString,
	KeyNotionPageSize:        kindPositiveInt,
	KeyNotionSort:            kindSort,
	KeyDisplayTruncate:       kindNonNegativeInt,
	KeyServerAddr:            kindString,
	KeyServerMode:            kindMode,
	KeySyncSchedule:          kindCron,
}

// SettingsService resolves settings from a config store and the environment.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := domain.Settings{
		Notion: domain.NotionSettings{
			Secret:          s.getStringOrEnv(KeyNotionSecret, EnvNotionSecret),
			DatabaseID:      s.getStringOrEnv(KeyNotionDatabaseID, EnvNotionDatabaseID),
			HeaderProperty:  s.getString(KeyNotionHeaderProperty, defaults.Notion.HeaderProperty),
			ContentProperty: s.getString(KeyNotionContentProperty, defaults.Notion.ContentProperty),
			DateProperty:    s.getString(KeyNotionDateProperty, defaults.Notion.DateProperty),
			PageSize:        s.getInt(KeyNotionPageSize, defaults.Notion.PageSize),
			Sort:            s.getSort(defaults.Notion.Sort),
		},
		Display: domain.DisplaySettings{
			TruncateLength: s.getTruncateLength(defaults.Display.TruncateLength),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(KeyServerAddr, defaults.Server.Addr),
			Mode: s.getServeMode(defaults.Server.Mode),
		},
		Sync: domain.SyncSettings{
			Schedule: s.configStore.GetString(KeySyncSchedule),
		},
	}

	return settings, nil
}

// Set parses and stores a single value.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	value = strings.TrimSpace(value)
	parsed, err := parseValue(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.configStore.Set(key, parsed)
}

// Validate checks that settings are sufficient for fetching.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Keys returns every recognised configuration key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns where settings are persisted.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func parseValue(kind keyKind, value string) (any, error) {
	switch kind {
	case kindPositiveInt, kindNonNegativeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", value)
		}
		if n < 0 || (kind == kindPositiveInt && n == 0) {
			return nil, fmt.Errorf("%d is out of range", n)
		}
		return n, nil
	case kindSort:
		if !domain.SortDirection(value).IsValid() {
			return nil, fmt.Errorf("sort must be ascending, descending or empty, got %q", value)
		}
		return value, nil
	case kindMode:
		if !domain.ServeMode(value).IsValid() {
			return nil, fmt.Errorf("mode must be live or cached, got %q", value)
		}
		return value, nil
	case kindCron:
		if value == "" {
			return value, nil
		}
		if _, err := cron.ParseStandard(value); err != nil {
			return nil, fmt.Errorf("invalid schedule: %w", err)
		}
		return value, nil
	default:
		return value, nil
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringOrEnv(key, env string) string {
	if val := strings.TrimSpace(s.configStore.GetString(key)); val != "" {
		return val
	}
	return strings.TrimSpace(s.getenv(env))
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// getTruncateLength allows an explicit zero.
func (s *SettingsService) getTruncateLength(defaultVal int) int {
	if _, exists := s.configStore.Get(KeyDisplayTruncate); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(KeyDisplayTruncate)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSort(defaultVal domain.SortDirection) domain.SortDirection {
	sortDir := domain.SortDirection(s.configStore.GetString(KeyNotionSort))
	if !sortDir.IsValid() {
		return defaultVal
	}
	return sortDir
}

func (s *SettingsService) getServeMode(defaultVal domain.ServeMode) domain.ServeMode {
	mode := domain.ServeMode(s.configStore.GetString(KeyServerMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
