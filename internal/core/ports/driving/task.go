package driving

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// TaskService reads and edits tasks of registered repositories.
type TaskService interface {
	// Get retrieves the full task data and refreshes the local task.
	Get(ctx context.Context, repositoryURL, taskID string) (*domain.TaskData, error)

	// New returns initialised task data for a task not yet submitted.
	New(ctx context.Context, repositoryURL string) (*domain.TaskData, error)

	// Submit posts task data and refreshes the local task.
	Submit(ctx context.Context, data *domain.TaskData) (*domain.RepositoryResponse, error)

	// Close closes a task.
	Close(ctx context.Context, repositoryURL, taskID string) (*domain.RepositoryResponse, error)

	// Reopen reopens a closed task.
	Reopen(ctx context.Context, repositoryURL, taskID string) (*domain.RepositoryResponse, error)

	// AddLabel attaches a label to a task.
	AddLabel(ctx context.Context, repositoryURL, taskID, label string) (bool, error)

	// RemoveLabel detaches a label from a task.
	RemoveLabel(ctx context.Context, repositoryURL, taskID, label string) (bool, error)

	// List returns the local tasks of a repository.
	List(ctx context.Context, repositoryURL string) ([]domain.Task, error)

	// TaskURL returns the web URL of a task.
	TaskURL(repositoryURL, taskID string) string

	// Resolve splits a task URL into repository URL and task ID.
	Resolve(taskURL string) (repositoryURL, taskID string, err error)

	// Links finds task references in text.
	Links(ctx context.Context, repositoryURL, text string, index, offset int) ([]driven.TaskHyperlink, error)
}
