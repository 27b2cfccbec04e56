package services

import (
	"fmt"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Returns the defaults when no config store is configured.
func (s *SettingsService) Get() domain.Settings {
	if s.configStore == nil {
		return domain.DefaultSettings()
	}
	return s.configStore.Settings()
}

// Value returns one setting by dotted key.
func (s *SettingsService) Value(key string) (string, error) {
	if s.configStore == nil {
		return "", domain.ErrNotImplemented
	}
	v, ok := s.configStore.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: unknown config key %q", domain.ErrNotFound, key)
	}
	return v, nil
}

// Set updates one setting and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	return s.configStore.Set(key, value)
}

// Keys returns every supported key.
func (s *SettingsService) Keys() []string {
	return domain.SettingKeys()
}

// Path returns where settings are persisted.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}
