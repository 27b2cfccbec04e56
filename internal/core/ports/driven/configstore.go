package driven

import "github.com/custodia-labs/ghtask/internal/core/domain"

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Settings returns the current settings with defaults applied.
	Settings() domain.Settings

	// Get retrieves a configuration value by dotted key, e.g. "github.timeout".
	// Returns the value and a boolean indicating if the key is known.
	Get(key string) (string, bool)

	// Set parses and stores a configuration value.
	// The value is persisted immediately.
	Set(key, value string) error

	// Keys returns every supported configuration key.
	Keys() []string

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
