package domain

import "time"

// ConnectorKindGitHub is the connector kind of GitHub task repositories.
const ConnectorKindGitHub = "github"

// API versions a repository can be served by.
const (
	// APIVersionV2 is the legacy JSON issues API.
	APIVersionV2 = "v2"
	// APIVersionV3 is the REST API.
	APIVersionV3 = "v3"
)

// TaskRepository is a GitHub project registered as a task repository.
type TaskRepository struct {
	// URL identifies the repository, e.g. https://github.com/user/project.
	URL string `json:"url"`

	// Kind is the connector kind (always "github" today).
	Kind string `json:"kind"`

	// Label is the human-readable name.
	Label string `json:"label"`

	// APIVersion selects the issue service backend ("v2" or "v3").
	APIVersion string `json:"api_version"`

	// CredentialsID references the Credentials used for write operations.
	// Empty for anonymous, read-only repositories.
	CredentialsID string `json:"credentials_id,omitempty"`

	// CreatedAt is when the repository was registered.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the repository was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the label, or the URL when no label is set.
func (r *TaskRepository) DisplayName() string {
	if r.Label != "" {
		return r.Label
	}
	return r.URL
}

// IsValidAPIVersion reports whether v names a supported API version.
func IsValidAPIVersion(v string) bool {
	return v == APIVersionV2 || v == APIVersionV3
}
