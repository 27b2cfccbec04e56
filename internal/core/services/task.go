package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
	"github.com/custodia-labs/ghtask/internal/logger"
)

// Ensure TaskService implements the interface.
var _ driving.TaskService = (*TaskService)(nil)

// TaskService reads and edits tasks and keeps the local task list current.
type TaskService struct {
	binder repositoryBinder
	sync   taskSync
}

// NewTaskService creates a new task service.
func NewTaskService(
	repoStore driven.RepositoryStore,
	taskStore driven.TaskStore,
	connector driven.RepositoryConnector,
	providers driven.CredentialsProviderFactory,
) *TaskService {
	return &TaskService{
		binder: repositoryBinder{repos: repoStore, providers: providers, connector: connector},
		sync:   taskSync{tasks: taskStore, connector: connector, now: time.Now},
	}
}

func (s *TaskService) ready() error {
	if s.sync.connector == nil || s.sync.tasks == nil {
		return domain.ErrNotImplemented
	}
	return nil
}

// Get retrieves the full task data and refreshes the local task.
func (s *TaskService) Get(ctx context.Context, repositoryURL, taskID string) (*domain.TaskData, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	b, err := s.binder.bind(ctx, repositoryURL)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, b, taskID)
}

func (s *TaskService) fetch(ctx context.Context, b *binding, taskID string) (*domain.TaskData, error) {
	data, err := s.sync.connector.GetTaskData(ctx, b.repo, b.creds, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", taskID, err)
	}
	if _, _, _, err := s.sync.apply(ctx, b.repo, data); err != nil {
		return nil, err
	}
	return data, nil
}

// New returns initialised task data for a new task.
func (s *TaskService) New(ctx context.Context, repositoryURL string) (*domain.TaskData, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	b, err := s.binder.bind(ctx, repositoryURL)
	if err != nil {
		return nil, err
	}
	if !s.sync.connector.CanCreateNewTask(b.repo) {
		return nil, fmt.Errorf("%w: %s does not accept new tasks", domain.ErrUnsupportedType, b.repo.URL)
	}
	return s.sync.connector.InitializeTaskData(b.repo), nil
}

// Submit posts task data, then refreshes the local task from the server.
// A failed refresh is logged; the submission result is still returned.
func (s *TaskService) Submit(ctx context.Context, data *domain.TaskData) (*domain.RepositoryResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, domain.ErrInvalidInput
	}
	b, err := s.binder.bind(ctx, data.RepositoryURL)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, b, data)
}

func (s *TaskService) submit(ctx context.Context, b *binding, data *domain.TaskData) (*domain.RepositoryResponse, error) {
	resp, err := s.sync.connector.PostTaskData(ctx, b.repo, b.creds, data)
	if err != nil {
		return nil, fmt.Errorf("submit task: %w", err)
	}

	if _, err := s.fetch(ctx, b, resp.TaskID); err != nil {
		logger.Warn("Submitted task %s but could not refresh it: %v", resp.TaskID, err)
	}
	return resp, nil
}

// Close closes a task.
func (s *TaskService) Close(ctx context.Context, repositoryURL, taskID string) (*domain.RepositoryResponse, error) {
	return s.transition(ctx, repositoryURL, taskID, domain.OperationClose)
}

// Reopen reopens a closed task.
func (s *TaskService) Reopen(ctx context.Context, repositoryURL, taskID string) (*domain.RepositoryResponse, error) {
	return s.transition(ctx, repositoryURL, taskID, domain.OperationReopen)
}

// transition submits the task with op selected in its operation attribute.
func (s *TaskService) transition(
	ctx context.Context, repositoryURL, taskID string, op domain.TaskOperation,
) (*domain.RepositoryResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	b, err := s.binder.bind(ctx, repositoryURL)
	if err != nil {
		return nil, err
	}

	data, err := s.sync.connector.GetTaskData(ctx, b.repo, b.creds, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", taskID, err)
	}

	attr := data.Attribute(domain.AttributeOperation)
	if attr == nil {
		return nil, fmt.Errorf("%w: task %s has no operations", domain.ErrUnsupportedType, taskID)
	}
	if _, ok := attr.Options[op.ID()]; !ok {
		return nil, fmt.Errorf("%w: cannot %s task %s in state %s",
			domain.ErrInvalidInput, op.Label(), taskID, data.Value(domain.AttributeStatus))
	}
	attr.SetValue(op.ID())

	return s.submit(ctx, b, data)
}

// AddLabel attaches a label to a task.
func (s *TaskService) AddLabel(ctx context.Context, repositoryURL, taskID, label string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	b, err := s.binder.bind(ctx, repositoryURL)
	if err != nil {
		return false, err
	}
	return s.sync.connector.AddLabel(ctx, b.repo, b.creds, taskID, label)
}

// RemoveLabel detaches a label from a task.
func (s *TaskService) RemoveLabel(ctx context.Context, repositoryURL, taskID, label string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	b, err := s.binder.bind(ctx, repositoryURL)
	if err != nil {
		return false, err
	}
	return s.sync.connector.RemoveLabel(ctx, b.repo, b.creds, taskID, label)
}

// List returns the local tasks of a repository.
func (s *TaskService) List(ctx context.Context, repositoryURL string) ([]domain.Task, error) {
	if s.sync.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sync.tasks.List(ctx, s.binder.canonical(repositoryURL))
}

// TaskURL returns the web URL of a task.
func (s *TaskService) TaskURL(repositoryURL, taskID string) string {
	if s.sync.connector == nil {
		return ""
	}
	return s.sync.connector.TaskURL(repositoryURL, taskID)
}

// Resolve splits a task URL into repository URL and task ID.
func (s *TaskService) Resolve(taskURL string) (string, string, error) {
	if s.sync.connector == nil {
		return "", "", domain.ErrNotImplemented
	}
	repoURL := s.sync.connector.RepositoryURLFromTaskURL(taskURL)
	taskID := s.sync.connector.TaskIDFromTaskURL(taskURL)
	if repoURL == "" || taskID == "" {
		return "", "", fmt.Errorf("%w: %q is not a task URL", domain.ErrInvalidInput, taskURL)
	}
	return repoURL, taskID, nil
}

// Links finds task references in text written in the context of repositoryURL.
func (s *TaskService) Links(
	ctx context.Context, repositoryURL, text string, index, offset int,
) ([]driven.TaskHyperlink, error) {
	if s.sync.connector == nil || s.binder.repos == nil {
		return nil, domain.ErrNotImplemented
	}
	repo, err := s.binder.get(ctx, repositoryURL)
	if err != nil {
		return nil, err
	}
	lookup, err := s.binder.lookup(ctx)
	if err != nil {
		return nil, err
	}
	return s.sync.connector.FindHyperlinks(*repo, text, index, offset, lookup), nil
}
