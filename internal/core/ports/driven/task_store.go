package driven

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// TaskStore persists the local task list.
// Tasks are keyed by repository URL and task ID.
type TaskStore interface {
	// Save stores a task. Creates if new, updates if exists.
	Save(ctx context.Context, task domain.Task) error

	// Get retrieves a task. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, repositoryURL, taskID string) (*domain.Task, error)

	// List returns the tasks of a repository ordered by task ID.
	List(ctx context.Context, repositoryURL string) ([]domain.Task, error)

	// Delete removes one task.
	Delete(ctx context.Context, repositoryURL, taskID string) error

	// DeleteByRepository removes every task of a repository.
	DeleteByRepository(ctx context.Context, repositoryURL string) error
}
