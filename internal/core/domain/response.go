package domain

// ResponseKind tells whether a submission created or updated a task.
type ResponseKind string

const (
	ResponseTaskCreated ResponseKind = "TASK_CREATED"
	ResponseTaskUpdated ResponseKind = "TASK_UPDATED"
)

// RepositoryResponse is the outcome of posting task data.
type RepositoryResponse struct {
	Kind   ResponseKind `json:"kind"`
	TaskID string       `json:"task_id"`
}
