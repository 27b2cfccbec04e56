package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// DataVersion is the task data schema version written by the handler.
const DataVersion = "1"

// TaskDataHandler maps issues to task data and submits task data back.
type TaskDataHandler struct{}

// NewTaskDataHandler creates a task data handler.
func NewTaskDataHandler() *TaskDataHandler {
	return &TaskDataHandler{}
}

// CreatePartialTaskData builds the task data a query result carries.
func (h *TaskDataHandler) CreatePartialTaskData(repo domain.TaskRepository, issue domain.Issue) *domain.TaskData {
	data := domain.NewTaskData(domain.ConnectorKindGitHub, repo.URL, issue.Number)
	data.Version = DataVersion

	createAttribute(data, AttrKey, issue.Number)
	createAttribute(data, AttrTitle, issue.Title)
	createAttribute(data, AttrBody, issue.Body)
	createAttribute(data, AttrStatus, issue.State)
	createAttribute(data, AttrCreationDate, toLocalDate(issue.CreatedAt))
	createAttribute(data, AttrModificationDate, toLocalDate(issue.UpdatedAt))
	createAttribute(data, AttrClosedDate, toLocalDate(issue.ClosedAt))

	data.Partial = true
	return data
}

// CreateTaskData builds complete task data, including the operations
// available for the issue's state.
func (h *TaskDataHandler) CreateTaskData(repo domain.TaskRepository, issue domain.Issue) *domain.TaskData {
	data := h.CreatePartialTaskData(repo, issue)
	data.Partial = false

	op := data.CreateAttribute(domain.AttributeOperation)
	op.Meta = domain.AttributeMetadata{
		Type:  domain.TypeSingleSelect,
		Kind:  domain.KindDefault,
		Label: "Operation",
	}
	op.SetValue(domain.OperationLeave.ID())
	op.PutOption(domain.OperationLeave.ID(), domain.OperationLeave.Label()+issue.State)
	if issue.IsClosed() {
		op.PutOption(domain.OperationReopen.ID(), domain.OperationReopen.Label())
	} else {
		op.PutOption(domain.OperationClose.ID(), domain.OperationClose.Label())
	}
	return data
}

// InitializeTaskData prepares data for a new task with empty init attributes.
func (h *TaskDataHandler) InitializeTaskData(data *domain.TaskData) {
	data.Version = DataVersion
	for _, def := range TaskAttributes() {
		if def.InitTask {
			createAttribute(data, def, "")
		}
	}
}

// CreateIssue maps task data back to an issue.
func (h *TaskDataHandler) CreateIssue(data *domain.TaskData) domain.Issue {
	var issue domain.Issue
	if !data.IsNew() {
		issue.Number = data.TaskID
	}
	issue.Body = data.Value(AttrBody.ID)
	issue.Title = data.Value(AttrTitle.ID)
	issue.State = data.Value(AttrStatus.ID)
	issue.CreatedAt = toGitHubDate(data.Value(AttrCreationDate.ID))
	issue.UpdatedAt = toGitHubDate(data.Value(AttrModificationDate.ID))
	issue.ClosedAt = toGitHubDate(data.Value(AttrClosedDate.ID))
	return issue
}

// PostTaskData opens a new issue or updates an existing one. A CLOSE or
// REOPEN operation also changes the issue's state.
func (h *TaskDataHandler) PostTaskData(
	ctx context.Context, svc driven.IssueService, repo domain.TaskRepository, data *domain.TaskData,
) (*domain.RepositoryResponse, error) {
	user, project := RepositoryUser(repo.URL), RepositoryProject(repo.URL)
	if user == "" || project == "" {
		return nil, ErrInvalidServerURL
	}
	issue := h.CreateIssue(data)

	if data.IsNew() {
		created, err := svc.OpenIssue(ctx, user, project, issue)
		if err != nil {
			return nil, fmt.Errorf("open issue: %w", err)
		}
		return &domain.RepositoryResponse{Kind: domain.ResponseTaskCreated, TaskID: created.Number}, nil
	}

	var err error
	op, _ := domain.OperationFromID(data.Value(domain.AttributeOperation))
	switch op {
	case domain.OperationClose:
		_, err = svc.CloseIssue(ctx, user, project, issue)
	case domain.OperationReopen:
		_, err = svc.ReopenIssue(ctx, user, project, issue)
	default:
		_, err = svc.EditIssue(ctx, user, project, issue)
	}
	if err != nil {
		return nil, fmt.Errorf("update issue %s: %w", issue.Number, err)
	}
	return &domain.RepositoryResponse{Kind: domain.ResponseTaskUpdated, TaskID: issue.Number}, nil
}

// DateValue parses a date attribute written by the handler.
// RFC 3339 is tried first, then the GitHub layout.
func DateValue(attr *domain.TaskAttribute) (time.Time, bool) {
	v := strings.TrimSpace(attr.Value())
	if v == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := domain.ParseGitHubDate(v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func createAttribute(data *domain.TaskData, def TaskAttributeDef, value string) {
	attr := data.CreateAttribute(def.ID)
	attr.Meta = def.Metadata()
	if value != "" {
		attr.AddValue(value)
	}
}

// toLocalDate converts "2010/02/02 22:58:39 -0800" to RFC 3339.
// Values that do not parse are kept as they are.
func toLocalDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return date
	}
	t, err := domain.ParseGitHubDate(date)
	if err != nil {
		return date
	}
	return t.Format(time.RFC3339)
}

// toGitHubDate converts an RFC 3339 date back to the GitHub layout.
func toGitHubDate(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return domain.FormatGitHubDate(t)
}
