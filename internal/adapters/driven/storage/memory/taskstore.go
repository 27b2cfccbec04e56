package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure TaskStore implements the interface.
var _ driven.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory implementation of driven.TaskStore.
// Tasks are bucketed by repository URL.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]map[string]domain.Task
}

// NewTaskStore creates a new in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]map[string]domain.Task),
	}
}

// Save stores or updates a task.
func (s *TaskStore) Save(_ context.Context, task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	repo, ok := s.tasks[task.RepositoryURL]
	if !ok {
		repo = make(map[string]domain.Task)
		s.tasks[task.RepositoryURL] = repo
	}
	repo[task.TaskID] = task
	return nil
}

// Get retrieves a task.
func (s *TaskStore) Get(_ context.Context, repositoryURL, taskID string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[repositoryURL][taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &task, nil
}

// List returns the tasks of a repository ordered by task ID.
func (s *TaskStore) List(_ context.Context, repositoryURL string) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Task, 0, len(s.tasks[repositoryURL]))
	for _, task := range s.tasks[repositoryURL] {
		result = append(result, task)
	}
	sort.Slice(result, func(i, j int) bool {
		return lessTaskID(result[i].TaskID, result[j].TaskID)
	})
	return result, nil
}

// Delete removes one task.
func (s *TaskStore) Delete(_ context.Context, repositoryURL, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks[repositoryURL], taskID)
	return nil
}

// DeleteByRepository removes every task of a repository.
func (s *TaskStore) DeleteByRepository(_ context.Context, repositoryURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, repositoryURL)
	return nil
}

// lessTaskID orders numeric IDs numerically and everything else lexically.
func lessTaskID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
