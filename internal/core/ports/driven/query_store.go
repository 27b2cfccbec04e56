package driven

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// QueryStore persists saved queries.
type QueryStore interface {
	Save(ctx context.Context, query domain.Query) error
	Get(ctx context.Context, id string) (*domain.Query, error)
	Delete(ctx context.Context, id string) error

	// List returns the queries of a repository, or all of them when
	// repositoryURL is empty.
	List(ctx context.Context, repositoryURL string) ([]domain.Query, error)

	// DeleteByRepository removes every query of a repository.
	DeleteByRepository(ctx context.Context, repositoryURL string) error
}
