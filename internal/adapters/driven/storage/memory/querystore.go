package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure QueryStore implements the interface.
var _ driven.QueryStore = (*QueryStore)(nil)

// QueryStore is an in-memory implementation of driven.QueryStore.
type QueryStore struct {
	mu      sync.RWMutex
	queries map[string]domain.Query
}

// NewQueryStore creates a new in-memory query store.
func NewQueryStore() *QueryStore {
	return &QueryStore{
		queries: make(map[string]domain.Query),
	}
}

// Save stores or updates a query.
func (s *QueryStore) Save(_ context.Context, query domain.Query) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[query.ID] = query
	return nil
}

// Get retrieves a query by ID.
func (s *QueryStore) Get(_ context.Context, id string) (*domain.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	query, ok := s.queries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &query, nil
}

// Delete removes a query.
func (s *QueryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.queries, id)
	return nil
}

// List returns the queries of a repository, or all when repositoryURL is
// empty, oldest first.
func (s *QueryStore) List(_ context.Context, repositoryURL string) ([]domain.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Query, 0, len(s.queries))
	for _, q := range s.queries {
		if repositoryURL == "" || q.RepositoryURL == repositoryURL {
			result = append(result, q)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// DeleteByRepository removes every query of a repository.
func (s *QueryStore) DeleteByRepository(_ context.Context, repositoryURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, q := range s.queries {
		if q.RepositoryURL == repositoryURL {
			delete(s.queries, id)
		}
	}
	return nil
}
