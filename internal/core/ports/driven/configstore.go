package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation matching the nested TOML tables ("notion.secret").
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// TemplateStore loads user-editable templates with built-in defaults.
type TemplateStore interface {
	// Load returns the named template, falling back to the default.
	Load(name string) (string, error)

	// Reload clears cached templates so the next Load reads from disk.
	Reload()

	// Dir returns the template directory.
	Dir() string
}
