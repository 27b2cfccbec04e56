package driven

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// CredentialsProvider supplies the credentials used for API calls.
type CredentialsProvider interface {
	// Credentials returns the current credentials.
	// Returns nil for anonymous repositories.
	Credentials(ctx context.Context) (*domain.Credentials, error)

	// CredentialsID returns the ID of the credentials in use.
	// Returns empty string for anonymous repositories.
	CredentialsID() string

	// IsAuthenticated returns true if a token is available.
	IsAuthenticated(ctx context.Context) bool
}

// CredentialsProviderFactory resolves the provider for a repository.
type CredentialsProviderFactory interface {
	ForRepository(repo domain.TaskRepository) CredentialsProvider
}
