package driving

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// QueryResult is the outcome of running a query.
type QueryResult struct {
	Query   domain.Query  `json:"query" yaml:"query"`
	Tasks   []domain.Task `json:"tasks" yaml:"tasks"`
	Added   int           `json:"added" yaml:"added"`
	Updated int           `json:"updated" yaml:"updated"`
}

// QueryService manages and runs saved queries.
type QueryService interface {
	// Add saves a query for a registered repository.
	Add(ctx context.Context, query domain.Query) (*domain.Query, error)

	// Get retrieves a query by ID.
	Get(ctx context.Context, id string) (*domain.Query, error)

	// List returns the queries of a repository, or all when empty.
	List(ctx context.Context, repositoryURL string) ([]domain.Query, error)

	// Remove deletes a query.
	Remove(ctx context.Context, id string) error

	// Run performs a saved query and synchronises the local task list.
	Run(ctx context.Context, id string, monitor domain.ProgressMonitor) (*QueryResult, error)

	// RunAdHoc performs an unsaved query and synchronises the local task list.
	RunAdHoc(ctx context.Context, query domain.Query, monitor domain.ProgressMonitor) (*QueryResult, error)
}
