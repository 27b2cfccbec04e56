package cli

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
)

const testRepoURL = "https://github.com/octocat/hello"

var errBoom = errors.New("boom")

type mockRepositoryService struct {
	repos     []domain.TaskRepository
	err       error
	added     *domain.TaskRepository
	addedWith *domain.Credentials
	removed   string
	validated string
}

func (m *mockRepositoryService) Add(
	_ context.Context,
	repo domain.TaskRepository,
	creds *domain.Credentials,
) (*domain.TaskRepository, error) {
	if m.err != nil {
		return nil, m.err
	}
	if repo.APIVersion == "" {
		repo.APIVersion = domain.APIVersionV2
	}
	if !creds.IsEmpty() {
		repo.CredentialsID = "creds-1"
	}
	m.added, m.addedWith = &repo, creds
	return &repo, nil
}

func (m *mockRepositoryService) Get(_ context.Context, url string) (*domain.TaskRepository, error) {
	for i := range m.repos {
		if m.repos[i].URL == url {
			return &m.repos[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepositoryService) List(_ context.Context) ([]domain.TaskRepository, error) {
	return m.repos, m.err
}

func (m *mockRepositoryService) Remove(_ context.Context, url string) error {
	m.removed = url
	return m.err
}

func (m *mockRepositoryService) Validate(_ context.Context, url string) error {
	m.validated = url
	return m.err
}

type mockQueryService struct {
	queries []domain.Query
	result  *driving.QueryResult
	err     error
	lastRun domain.Query
	ran     string
	removed string
}

func (m *mockQueryService) Add(_ context.Context, q domain.Query) (*domain.Query, error) {
	if m.err != nil {
		return nil, m.err
	}
	q.ID = "q-1"
	if q.Summary == "" {
		q.Summary = q.DefaultSummary()
	}
	m.queries = append(m.queries, q)
	return &q, nil
}

func (m *mockQueryService) Get(_ context.Context, id string) (*domain.Query, error) {
	for i := range m.queries {
		if m.queries[i].ID == id {
			return &m.queries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockQueryService) List(_ context.Context, repositoryURL string) ([]domain.Query, error) {
	var out []domain.Query
	for _, q := range m.queries {
		if repositoryURL == "" || q.RepositoryURL == repositoryURL {
			out = append(out, q)
		}
	}
	return out, m.err
}

func (m *mockQueryService) Remove(_ context.Context, id string) error {
	m.removed = id
	return m.err
}

func (m *mockQueryService) Run(_ context.Context, id string, monitor domain.ProgressMonitor) (*driving.QueryResult, error) {
	m.ran = id
	return m.respond(monitor)
}

func (m *mockQueryService) RunAdHoc(
	_ context.Context,
	q domain.Query,
	monitor domain.ProgressMonitor,
) (*driving.QueryResult, error) {
	m.lastRun = q
	return m.respond(monitor)
}

func (m *mockQueryService) respond(monitor domain.ProgressMonitor) (*driving.QueryResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	monitor.BeginTask("Querying issues", len(m.result.Tasks))
	monitor.Worked(len(m.result.Tasks))
	monitor.Done()
	return m.result, nil
}

type mockTaskService struct {
	data      map[string]*domain.TaskData
	tasks     []domain.Task
	links     []driven.TaskHyperlink
	err       error
	submitted *domain.TaskData
	closed    string
	reopened  string
	labelled  string
	changed   bool
}

func newMockTaskService() *mockTaskService {
	data := domain.NewTaskData(domain.ConnectorKindGitHub, testRepoURL, "7")
	data.SetValue(domain.AttributeSummary, "Crash on start")
	data.SetValue(domain.AttributeStatus, "open")
	data.SetValue(domain.AttributeDescription, "It crashes.")
	data.Attribute(domain.AttributeStatus).Meta.Label = "Status"
	return &mockTaskService{data: map[string]*domain.TaskData{"7": data}, changed: true}
}

func (m *mockTaskService) Get(_ context.Context, _, taskID string) (*domain.TaskData, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.data[taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *mockTaskService) New(_ context.Context, repositoryURL string) (*domain.TaskData, error) {
	if m.err != nil {
		return nil, m.err
	}
	return domain.NewTaskData(domain.ConnectorKindGitHub, repositoryURL, ""), nil
}

func (m *mockTaskService) Submit(_ context.Context, data *domain.TaskData) (*domain.RepositoryResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.submitted = data
	if data.IsNew() {
		return &domain.RepositoryResponse{Kind: domain.ResponseTaskCreated, TaskID: "8"}, nil
	}
	return &domain.RepositoryResponse{Kind: domain.ResponseTaskUpdated, TaskID: data.TaskID}, nil
}

func (m *mockTaskService) Close(_ context.Context, _, taskID string) (*domain.RepositoryResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.closed = taskID
	return &domain.RepositoryResponse{Kind: domain.ResponseTaskUpdated, TaskID: taskID}, nil
}

func (m *mockTaskService) Reopen(_ context.Context, _, taskID string) (*domain.RepositoryResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.reopened = taskID
	return &domain.RepositoryResponse{Kind: domain.ResponseTaskUpdated, TaskID: taskID}, nil
}

func (m *mockTaskService) AddLabel(_ context.Context, _, taskID, label string) (bool, error) {
	m.labelled = "+" + label + "@" + taskID
	return m.changed, m.err
}

func (m *mockTaskService) RemoveLabel(_ context.Context, _, taskID, label string) (bool, error) {
	m.labelled = "-" + label + "@" + taskID
	return m.changed, m.err
}

func (m *mockTaskService) List(_ context.Context, _ string) ([]domain.Task, error) {
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
	_, _ string,
	_, _ int,
) ([]driven.TaskHyperlink, error) {
	return m.links, m.err
}

type mockSettingsService struct {
	values map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{values: map[string]string{
		domain.KeyAPIVersion: domain.APIVersionV2,
		domain.KeyTimeout:    "30s",
	}}
}

func (m *mockSettingsService) Get() domain.Settings {
	s := domain.DefaultSettings()
	s.GitHub.APIVersion = m.values[domain.KeyAPIVersion]
	return s
}

func (m *mockSettingsService) Value(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if _, ok := m.values[key]; !ok {
		return domain.ErrNotFound
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *mockSettingsService) Path() string {
	return "/tmp/ghtask/config.toml"
}

type testServices struct {
	repos    *mockRepositoryService
	queries  *mockQueryService
	tasks    *mockTaskService
	settings *mockSettingsService
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous services and resets every flag.
func setupTestServices() (*testServices, func()) {
	oldRepo, oldQuery, oldTask, oldSettings := repositoryService, queryService, taskService, settingsService
	oldBootstrap := bootstrap

	ts := &testServices{
		repos:    &mockRepositoryService{},
		queries:  &mockQueryService{result: &driving.QueryResult{}},
		tasks:    newMockTaskService(),
		settings: newMockSettingsService(),
	}
	bootstrap = nil
	SetServices(&Services{
		Repository: ts.repos,
		Query:      ts.queries,
		Task:       ts.tasks,
		Settings:   ts.settings,
	})

	return ts, func() {
		repositoryService, queryService, taskService, settingsService = oldRepo, oldQuery, oldTask, oldSettings
		bootstrap = oldBootstrap
		cleanup = nil
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
