package domain

import "time"

// Default settings values.
const (
	DefaultV2BaseURL  = "https://github.com/api/v2/json/"
	DefaultTimeout    = 30 * time.Second
	DefaultAPIVersion = APIVersionV2
)

// Settings is the persisted application configuration.
type Settings struct {
	GitHub  GitHubSettings  `toml:"github" json:"github" yaml:"github"`
	Storage StorageSettings `toml:"storage" json:"storage" yaml:"storage"`
	Log     LogSettings     `toml:"log" json:"log" yaml:"log"`
}

// GitHubSettings configures the issue service backends.
type GitHubSettings struct {
	// APIVersion is used for repositories added without an explicit version.
	APIVersion string `toml:"api_version" json:"api_version" yaml:"api_version"`

	// V2BaseURL is the root of the legacy JSON API.
	V2BaseURL string `toml:"v2_base_url" json:"v2_base_url" yaml:"v2_base_url"`

	// V3BaseURL overrides the REST API root (GitHub Enterprise).
	V3BaseURL string `toml:"v3_base_url,omitempty" json:"v3_base_url,omitempty" yaml:"v3_base_url,omitempty"`

	// Timeout bounds each HTTP request, e.g. "30s".
	Timeout string `toml:"timeout" json:"timeout" yaml:"timeout"`
}

// StorageSettings configures persistence.
type StorageSettings struct {
	// DataDir holds the task database. Empty means ~/.ghtask/data.
	DataDir string `toml:"data_dir,omitempty" json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}

// LogSettings configures logging.
type LogSettings struct {
	Verbose bool `toml:"verbose" json:"verbose" yaml:"verbose"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		GitHub: GitHubSettings{
			APIVersion: DefaultAPIVersion,
			V2BaseURL:  DefaultV2BaseURL,
			Timeout:    DefaultTimeout.String(),
		},
	}
}

// TimeoutDuration parses Timeout, falling back to DefaultTimeout.
func (s GitHubSettings) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}
