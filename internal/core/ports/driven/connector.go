package driven

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// TaskDataCollector receives task data produced by a query.
type TaskDataCollector func(data *domain.TaskData)

// TaskHyperlink is a reference to a task found in free text.
// RepositoryURL and TaskID are set when the task belongs to a known
// repository; otherwise WebURL points at the issue on the web.
type TaskHyperlink struct {
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	RepositoryURL string `json:"repository_url,omitempty"`
	TaskID        string `json:"task_id,omitempty"`
	WebURL        string `json:"web_url,omitempty"`
}

// RepositoryLookup finds a registered repository by URL.
// Returns nil when no repository is registered under that URL.
type RepositoryLookup func(url string) *domain.TaskRepository

// RepositoryConnector adapts a remote issue tracker to the generic task model.
type RepositoryConnector interface {
	// Kind returns the connector kind identifier.
	Kind() string

	// Label returns the human readable connector name.
	Label() string

	// CanCreateNewTask reports whether tasks can be created remotely.
	CanCreateNewTask(repo domain.TaskRepository) bool

	// CanCreateTaskFromKey reports whether a task can be opened by its key.
	CanCreateTaskFromKey(repo domain.TaskRepository) bool

	// PerformQuery runs a saved query, handing each result to collect.
	PerformQuery(ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials,
		query domain.Query, collect TaskDataCollector, monitor domain.ProgressMonitor) error

	// GetTaskData retrieves the full task data of one task.
	GetTaskData(ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials,
		taskID string) (*domain.TaskData, error)

	// InitializeTaskData prepares task data for a task not yet submitted.
	InitializeTaskData(repo domain.TaskRepository) *domain.TaskData

	// PostTaskData submits task data, creating or updating the task.
	PostTaskData(ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials,
		data *domain.TaskData) (*domain.RepositoryResponse, error)

	// AddLabel attaches a label to a task.
	AddLabel(ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials,
		taskID, label string) (bool, error)

	// RemoveLabel detaches a label from a task.
	RemoveLabel(ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials,
		taskID, label string) (bool, error)

	// HasTaskChanged reports whether data differs from the local task.
	HasTaskChanged(repo domain.TaskRepository, task *domain.Task, data *domain.TaskData) bool

	// UpdateTaskFromTaskData copies task data into the local task.
	UpdateTaskFromTaskData(repo domain.TaskRepository, task *domain.Task, data *domain.TaskData)

	// NormalizeRepositoryURL returns the canonical form of a repository URL.
	NormalizeRepositoryURL(url string) (string, error)

	// TaskURL returns the web URL of a task.
	TaskURL(repositoryURL, taskID string) string

	// RepositoryURLFromTaskURL extracts the repository URL from a task URL.
	// Returns an empty string when the URL is not a task URL.
	RepositoryURLFromTaskURL(taskURL string) string

	// TaskIDFromTaskURL extracts the task ID from a task URL.
	// Returns an empty string when the URL is not a task URL.
	TaskIDFromTaskURL(taskURL string) string

	// ValidateRepository checks the repository URL and connectivity.
	ValidateRepository(ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials) error

	// FindHyperlinks finds task references in text.
	// index -1 returns all references, otherwise those covering index.
	FindHyperlinks(repo domain.TaskRepository, text string, index, offset int,
		lookup RepositoryLookup) []TaskHyperlink
}
