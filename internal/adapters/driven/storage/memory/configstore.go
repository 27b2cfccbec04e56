package memory

import (
	"sync"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore for testing.
type ConfigStore struct {
	mu       sync.RWMutex
	settings domain.Settings
}

// NewConfigStore creates a new in-memory config store holding the defaults.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{settings: domain.DefaultSettings()}
}

// Settings returns the current settings.
func (s *ConfigStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Value(key)
}

// Set parses and stores a configuration value.
func (s *ConfigStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	if err := next.SetValue(key, value); err != nil {
		return err
	}
	s.settings = next
	return nil
}

// Keys returns every supported configuration key.
func (s *ConfigStore) Keys() []string {
	return domain.SettingKeys()
}

// Save is a no-op for in-memory store.
func (s *ConfigStore) Save() error {
	return nil
}

// Load is a no-op for in-memory store.
func (s *ConfigStore) Load() error {
	return nil
}

// Path returns an empty string for in-memory store.
func (s *ConfigStore) Path() string {
	return ""
}
