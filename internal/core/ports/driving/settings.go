package driving

import "github.com/custodia-labs/ghtask/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() domain.Settings

	// Value returns one setting by dotted key.
	Value(key string) (string, error)

	// Set updates one setting by dotted key and persists it.
	Set(key, value string) error

	// Keys returns every supported key.
	Keys() []string

	// Path returns where settings are persisted.
	Path() string
}
