package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Configuration keys, in display order.
const (
	KeyAPIVersion = "github.api_version"
	KeyV2BaseURL  = "github.v2_base_url"
	KeyV3BaseURL  = "github.v3_base_url"
	KeyTimeout    = "github.timeout"
	KeyDataDir    = "storage.data_dir"
	KeyVerbose    = "log.verbose"
)

// SettingKeys returns every supported configuration key.
func SettingKeys() []string {
	return []string{KeyAPIVersion, KeyV2BaseURL, KeyV3BaseURL, KeyTimeout, KeyDataDir, KeyVerbose}
}

// Value returns the value of key as a string.
func (s *Settings) Value(key string) (string, bool) {
	switch key {
	case KeyAPIVersion:
		return s.GitHub.APIVersion, true
	case KeyV2BaseURL:
		return s.GitHub.V2BaseURL, true
	case KeyV3BaseURL:
		return s.GitHub.V3BaseURL, true
	case KeyTimeout:
		return s.GitHub.Timeout, true
	case KeyDataDir:
		return s.Storage.DataDir, true
	case KeyVerbose:
		return strconv.FormatBool(s.Log.Verbose), true
	}
	return "", false
}

// SetValue parses value and assigns it to key.
func (s *Settings) SetValue(key, value string) error {
	switch key {
	case KeyAPIVersion:
		if !IsValidAPIVersion(value) {
			return fmt.Errorf("%w: %s must be v2 or v3, got %q", ErrInvalidInput, key, value)
		}
		s.GitHub.APIVersion = value
	case KeyV2BaseURL:
		s.GitHub.V2BaseURL = value
	case KeyV3BaseURL:
		s.GitHub.V3BaseURL = value
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %s must be a positive duration, got %q", ErrInvalidInput, key, value)
		}
		s.GitHub.Timeout = value
	case KeyDataDir:
		s.Storage.DataDir = value
	case KeyVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", ErrInvalidInput, key, value)
		}
		s.Log.Verbose = b
	default:
		return fmt.Errorf("%w: unknown config key %q", ErrNotFound, key)
	}
	return nil
}

// WithDefaults fills empty fields from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.GitHub.APIVersion == "" {
		s.GitHub.APIVersion = d.GitHub.APIVersion
	}
	if s.GitHub.V2BaseURL == "" {
		s.GitHub.V2BaseURL = d.GitHub.V2BaseURL
	}
	if s.GitHub.Timeout == "" {
		s.GitHub.Timeout = d.GitHub.Timeout
	}
	return s
}
