package driving

import "github.com/custodia-labs/eventbox/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves current settings from the config store and environment.
	Get() (domain.Settings, error)

	// Set stores a single configuration value by key.
	Set(key, value string) error

	// Validate checks that settings are sufficient for fetching.
	Validate() error

	// Keys returns every recognised configuration key.
	Keys() []string
}
