package driving

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// RepositoryService manages task repository configurations.
type RepositoryService interface {
	// Add registers a repository. creds may be nil for anonymous access.
	Add(ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials) (*domain.TaskRepository, error)

	// Get retrieves a repository by URL.
	Get(ctx context.Context, url string) (*domain.TaskRepository, error)

	// List returns all registered repositories.
	List(ctx context.Context) ([]domain.TaskRepository, error)

	// Remove deletes a repository with its queries, tasks and credentials.
	Remove(ctx context.Context, url string) error

	// Validate checks a registered repository against the remote API.
	Validate(ctx context.Context, url string) error
}
