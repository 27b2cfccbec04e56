package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.RepositoryConnector = (*Connector)(nil)

// Connector adapts GitHub issue trackers to the generic task model.
type Connector struct {
	factory driven.IssueServiceFactory
	handler *TaskDataHandler
}

// New creates a GitHub connector that obtains issue services from factory.
func New(factory driven.IssueServiceFactory) *Connector {
	return &Connector{
		factory: factory,
		handler: NewTaskDataHandler(),
	}
}

// Kind returns the connector kind identifier.
func (c *Connector) Kind() string {
	return domain.ConnectorKindGitHub
}

// Label returns the connector name.
func (c *Connector) Label() string {
	return "GitHub"
}

// TaskDataHandler returns the handler used for mapping issues.
func (c *Connector) TaskDataHandler() *TaskDataHandler {
	return c.handler
}

// CanCreateNewTask is always true.
func (c *Connector) CanCreateNewTask(domain.TaskRepository) bool {
	return true
}

// CanCreateTaskFromKey is always true.
func (c *Connector) CanCreateTaskFromKey(domain.TaskRepository) bool {
	return true
}

// PerformQuery runs one search per queried status and collects partial
// task data for every issue found. The first failing search aborts.
func (c *Connector) PerformQuery(
	ctx context.Context,
	repo domain.TaskRepository,
	creds *domain.Credentials,
	query domain.Query,
	collect driven.TaskDataCollector,
	monitor domain.ProgressMonitor,
) error {
	monitor = domain.MonitorOrNull(monitor)
	statuses := query.Statuses()

	monitor.BeginTask("Querying repository ...", len(statuses))
	defer monitor.Done()

	svc, user, project, err := c.service(repo, creds)
	if err != nil {
		return err
	}

	for _, status := range statuses {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		issues, err := svc.SearchIssues(ctx, user, project, status, query.QueryText)
		if err != nil {
			return fmt.Errorf("search %s issues: %w", status, err)
		}
		for _, issue := range issues {
			collect(c.handler.CreatePartialTaskData(repo, issue))
		}
		monitor.Worked(1)
	}
	return nil
}

// GetTaskData fetches one issue as complete task data.
func (c *Connector) GetTaskData(
	ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials, taskID string,
) (*domain.TaskData, error) {
	svc, user, project, err := c.service(repo, creds)
	if err != nil {
		return nil, err
	}

	issue, err := svc.ShowIssue(ctx, user, project, taskID)
	if err != nil {
		return nil, fmt.Errorf("show issue %s: %w", taskID, err)
	}
	return c.handler.CreateTaskData(repo, *issue), nil
}

// InitializeTaskData returns task data for a task not yet submitted.
func (c *Connector) InitializeTaskData(repo domain.TaskRepository) *domain.TaskData {
	data := domain.NewTaskData(domain.ConnectorKindGitHub, repo.URL, "")
	c.handler.InitializeTaskData(data)
	return data
}

// PostTaskData submits task data through the handler.
func (c *Connector) PostTaskData(
	ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials, data *domain.TaskData,
) (*domain.RepositoryResponse, error) {
	svc, _, _, err := c.service(repo, creds)
	if err != nil {
		return nil, err
	}
	return c.handler.PostTaskData(ctx, svc, repo, data)
}

// AddLabel attaches a label to an issue.
func (c *Connector) AddLabel(
	ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials, taskID, label string,
) (bool, error) {
	svc, user, project, err := c.service(repo, creds)
	if err != nil {
		return false, err
	}
	return svc.AddLabel(ctx, user, project, label, taskID)
}

// RemoveLabel detaches a label from an issue.
func (c *Connector) RemoveLabel(
	ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials, taskID, label string,
) (bool, error) {
	svc, user, project, err := c.service(repo, creds)
	if err != nil {
		return false, err
	}
	return svc.RemoveLabel(ctx, user, project, label, taskID)
}

// HasTaskChanged compares task data with the local task.
func (c *Connector) HasTaskChanged(_ domain.TaskRepository, task *domain.Task, data *domain.TaskData) bool {
	return domain.NewTaskMapper(data, DateValue).HasChanges(task)
}

// UpdateTaskFromTaskData copies task data into the local task.
func (c *Connector) UpdateTaskFromTaskData(repo domain.TaskRepository, task *domain.Task, data *domain.TaskData) {
	if !data.IsNew() {
		task.URL = c.TaskURL(repo.URL, data.TaskID)
	}
	domain.NewTaskMapper(data, DateValue).ApplyTo(task)
}

// NormalizeRepositoryURL rewrites url to https://github.com/user/project.
func (c *Connector) NormalizeRepositoryURL(url string) (string, error) {
	return NormalizeRepositoryURL(url)
}

// TaskURL returns <repositoryURL>/issues/<taskID>.
func (c *Connector) TaskURL(repositoryURL, taskID string) string {
	return TaskURL(repositoryURL, taskID)
}

// RepositoryURLFromTaskURL extracts the repository URL from a task URL.
func (c *Connector) RepositoryURLFromTaskURL(taskURL string) string {
	return RepositoryURLFromTaskURL(taskURL)
}

// TaskIDFromTaskURL extracts the task ID from a task URL.
func (c *Connector) TaskIDFromTaskURL(taskURL string) string {
	return TaskIDFromTaskURL(taskURL)
}

// ValidateRepository checks the URL form, then runs one search for open
// issues. When credentials are given they are validated too.
func (c *Connector) ValidateRepository(
	ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials,
) error {
	if !IsValidURL(repo.URL) || !IsRepositoryURL(repo.URL) {
		return ErrInvalidServerURL
	}

	svc, user, project, err := c.service(repo, creds)
	if err != nil {
		return err
	}

	if _, err := svc.SearchIssues(ctx, user, project, domain.IssueStateOpen, ""); err != nil {
		return &ValidationError{Err: err}
	}
	if creds.HasToken() {
		if err := svc.ValidateCredentials(ctx); err != nil {
			return &ValidationError{Err: err}
		}
	}
	return nil
}

// FindHyperlinks finds issue references in text.
func (c *Connector) FindHyperlinks(
	repo domain.TaskRepository, text string, index, offset int, lookup driven.RepositoryLookup,
) []driven.TaskHyperlink {
	return FindHyperlinks(repo, text, index, offset, lookup)
}

// service resolves the issue service and the user/project of repo.
func (c *Connector) service(
	repo domain.TaskRepository, creds *domain.Credentials,
) (driven.IssueService, string, string, error) {
	if c.factory == nil {
		return nil, "", "", domain.ErrNotImplemented
	}
	user, project := RepositoryUser(repo.URL), RepositoryProject(repo.URL)
	if user == "" || project == "" {
		return nil, "", "", ErrInvalidServerURL
	}
	svc, err := c.factory.ServiceFor(repo, creds)
	if err != nil {
		return nil, "", "", err
	}
	return svc, user, project, nil
}

// ValidationError is a failed repository test.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "Repository Test failed: " + errorMessage(e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// errorMessage returns the innermost service message of err.
func errorMessage(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.StatusCode != 0 {
		return svcErr.Status
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
