package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
	"github.com/custodia-labs/ghtask/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService manages saved queries and synchronises their results
// into the local task list.
type QueryService struct {
	queryStore driven.QueryStore
	binder     repositoryBinder
	sync       taskSync
}

// NewQueryService creates a new query service.
func NewQueryService(
	queryStore driven.QueryStore,
	repoStore driven.RepositoryStore,
	taskStore driven.TaskStore,
	connector driven.RepositoryConnector,
	providers driven.CredentialsProviderFactory,
) *QueryService {
	return &QueryService{
		queryStore: queryStore,
		binder:     repositoryBinder{repos: repoStore, providers: providers, connector: connector},
		sync:       taskSync{tasks: taskStore, connector: connector, now: time.Now},
	}
}

// Add saves a query for a registered repository.
func (s *QueryService) Add(ctx context.Context, query domain.Query) (*domain.Query, error) {
	if s.queryStore == nil || s.binder.repos == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.prepare(&query); err != nil {
		return nil, err
	}
	repo, err := s.binder.get(ctx, query.RepositoryURL)
	if err != nil {
		return nil, err
	}
	query.RepositoryURL = repo.URL

	query.ID = uuid.New().String()
	query.CreatedAt = time.Now().UTC()
	if err := s.queryStore.Save(ctx, query); err != nil {
		return nil, fmt.Errorf("save query: %w", err)
	}
	return &query, nil
}

// Get retrieves a query by ID.
func (s *QueryService) Get(ctx context.Context, id string) (*domain.Query, error) {
	if s.queryStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.queryStore.Get(ctx, id)
}

// List returns the queries of a repository, or all when repositoryURL is empty.
func (s *QueryService) List(ctx context.Context, repositoryURL string) ([]domain.Query, error) {
	if s.queryStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.queryStore.List(ctx, s.binder.canonical(repositoryURL))
}

// Remove deletes a query.
func (s *QueryService) Remove(ctx context.Context, id string) error {
	if s.queryStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.queryStore.Get(ctx, id); err != nil {
		return err
	}
	return s.queryStore.Delete(ctx, id)
}

// Run performs a saved query.
func (s *QueryService) Run(ctx context.Context, id string, monitor domain.ProgressMonitor) (*driving.QueryResult, error) {
	query, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, *query, monitor)
}

// RunAdHoc performs a query that is not saved.
func (s *QueryService) RunAdHoc(
	ctx context.Context, query domain.Query, monitor domain.ProgressMonitor,
) (*driving.QueryResult, error) {
	if err := s.prepare(&query); err != nil {
		return nil, err
	}
	return s.run(ctx, query, monitor)
}

// prepare validates query and fills the default summary.
func (s *QueryService) prepare(query *domain.Query) error {
	if query.RepositoryURL == "" {
		return fmt.Errorf("%w: query needs a repository", domain.ErrInvalidInput)
	}
	if query.Status == "" {
		query.Status = domain.IssueStateOpen
	}
	if err := query.Validate(); err != nil {
		return err
	}
	query.QueryText = strings.TrimSpace(query.QueryText)
	if query.Summary == "" {
		query.Summary = query.DefaultSummary()
	}
	return nil
}

func (s *QueryService) run(
	ctx context.Context, query domain.Query, monitor domain.ProgressMonitor,
) (*driving.QueryResult, error) {
	if s.sync.connector == nil || s.sync.tasks == nil {
		return nil, domain.ErrNotImplemented
	}

	b, err := s.binder.bind(ctx, query.RepositoryURL)
	if err != nil {
		return nil, err
	}
	query.RepositoryURL = b.repo.URL
	logger.Section("Query " + query.Summary)

	var collected []*domain.TaskData
	collect := func(data *domain.TaskData) {
		collected = append(collected, data)
	}
	if err := s.sync.connector.PerformQuery(ctx, b.repo, b.creds, query, collect, monitor); err != nil {
		return nil, fmt.Errorf("query %s: %w", query.Summary, err)
	}

	result := &driving.QueryResult{Query: query, Tasks: make([]domain.Task, 0, len(collected))}
	for _, data := range collected {
		task, added, updated, err := s.sync.apply(ctx, b.repo, data)
		if err != nil {
			return nil, err
		}
		if added {
			result.Added++
		}
		if updated {
			result.Updated++
		}
		result.Tasks = append(result.Tasks, task)
	}

	logger.Info("Query %q: %d tasks, %d new, %d changed",
		query.Summary, len(result.Tasks), result.Added, result.Updated)
	return result, nil
}
