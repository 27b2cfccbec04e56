package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	result  *driving.QueryResult
	err     error
	lastRun domain.Query
}

func (m *mockQueryService) Add(_ context.Context, q domain.Query) (*domain.Query, error) {
	return &q, m.err
}

func (m *mockQueryService) Get(_ context.Context, _ string) (*domain.Query, error) {
	return nil, m.err
}

func (m *mockQueryService) List(_ context.Context, _ string) ([]domain.Query, error) {
	return nil, m.err
}

func (m *mockQueryService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockQueryService) Run(_ context.Context, _ string, _ domain.ProgressMonitor) (*driving.QueryResult, error) {
	return m.result, m.err
}

func (m *mockQueryService) RunAdHoc(
	_ context.Context,
	q domain.Query,
	_ domain.ProgressMonitor,
) (*driving.QueryResult, error) {
	m.lastRun = q
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockTaskService is a mock implementation of driving.TaskService.
type mockTaskService struct {
	data  *domain.TaskData
	tasks []domain.Task
	links []driven.TaskHyperlink
	err   error

	gotRepo string
	gotTask string
}

func (m *mockTaskService) Get(_ context.Context, repositoryURL, taskID string) (*domain.TaskData, error) {
	m.gotRepo, m.gotTask = repositoryURL, taskID
	return m.data, m.err
}

func (m *mockTaskService) New(_ context.Context, _ string) (*domain.TaskData, error) {
	return m.data, m.err
}

func (m *mockTaskService) Submit(_ context.Context, _ *domain.TaskData) (*domain.RepositoryResponse, error) {
	return nil, m.err
}

func (m *mockTaskService) Close(_ context.Context, _, _ string) (*domain.RepositoryResponse, error) {
	return nil, m.err
}

func (m *mockTaskService) Reopen(_ context.Context, _, _ string) (*domain.RepositoryResponse, error) {
	return nil, m.err
}

func (m *mockTaskService) AddLabel(_ context.Context, _, _, _ string) (bool, error) {
	return true, m.err
}

func (m *mockTaskService) RemoveLabel(_ context.Context, _, _, _ string) (bool, error) {
	return true, m.err
}

func (m *mockTaskService) List(_ context.Context, repositoryURL string) ([]domain.Task, error) {
	m.gotRepo = repositoryURL
	return m.tasks, m.err
}

func (m *mockTaskService) TaskURL(repositoryURL, taskID string) string {
	return repositoryURL + "/issues/" + taskID
}

func (m *mockTaskService) Resolve(taskURL string) (string, string, error) {
	i := strings.Index(taskURL, "/issues/")
	if i < 0 {
		return "", "", domain.ErrInvalidInput
	}
	return taskURL[:i], taskURL[i+len("/issues/"):], nil
}

func (m *mockTaskService) Links(
	_ context.Context,
	repositoryURL, _ string,
	_, _ int,
) ([]driven.TaskHyperlink, error) {
	m.gotRepo = repositoryURL
	return m.links, m.err
}

// mockRepositoryService is a mock implementation of driving.RepositoryService.
type mockRepositoryService struct {
	repos []domain.TaskRepository
	err   error
}

func (m *mockRepositoryService) Add(
	_ context.Context,
	repo domain.TaskRepository,
	_ *domain.Credentials,
) (*domain.TaskRepository, error) {
	return &repo, m.err
}

func (m *mockRepositoryService) Get(_ context.Context, _ string) (*domain.TaskRepository, error) {
	return nil, m.err
}

func (m *mockRepositoryService) List(_ context.Context) ([]domain.TaskRepository, error) {
	return m.repos, m.err
}

func (m *mockRepositoryService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockRepositoryService) Validate(_ context.Context, _ string) error {
	return m.err
}

// validPorts returns ports with empty mocks for the required services.
func validPorts() *Ports {
	return &Ports{
		Query: &mockQueryService{result: &driving.QueryResult{}},
		Task:  &mockTaskService{},
	}
}
