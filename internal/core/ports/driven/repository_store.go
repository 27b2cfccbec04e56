package driven

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// RepositoryStore persists task repository configurations.
type RepositoryStore interface {
	// Save stores a repository. Creates if new, updates if exists.
	Save(ctx context.Context, repo domain.TaskRepository) error

	// Get retrieves a repository by URL.
	Get(ctx context.Context, url string) (*domain.TaskRepository, error)

	// Delete removes a repository.
	Delete(ctx context.Context, url string) error

	// List returns all repositories.
	List(ctx context.Context) ([]domain.TaskRepository, error)
}
