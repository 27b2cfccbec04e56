package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure RepositoryStore implements the interface.
var _ driven.RepositoryStore = (*RepositoryStore)(nil)

// RepositoryStore is an in-memory implementation of driven.RepositoryStore.
type RepositoryStore struct {
	mu    sync.RWMutex
	repos map[string]domain.TaskRepository
}

// NewRepositoryStore creates a new in-memory repository store.
func NewRepositoryStore() *RepositoryStore {
	return &RepositoryStore{
		repos: make(map[string]domain.TaskRepository),
	}
}

// Save stores or updates a repository.
func (s *RepositoryStore) Save(_ context.Context, repo domain.TaskRepository) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[repo.URL] = repo
	return nil
}

// Get retrieves a repository by URL.
func (s *RepositoryStore) Get(_ context.Context, url string) (*domain.TaskRepository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	repo, ok := s.repos[url]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &repo, nil
}

// Delete removes a repository.
func (s *RepositoryStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.repos, url)
	return nil
}

// List returns all repositories ordered by URL.
func (s *RepositoryStore) List(_ context.Context) ([]domain.TaskRepository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.TaskRepository, 0, len(s.repos))
	for _, repo := range s.repos {
		result = append(result, repo)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].URL < result[j].URL })
	return result, nil
}
