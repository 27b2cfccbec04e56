package domain

import "time"

// Task is an entry of the local task list. It mirrors the subset of
// TaskData that the list shows and uses for change detection.
type Task struct {
	RepositoryURL string    `json:"repository_url"`
	TaskID        string    `json:"task_id"`
	Key           string    `json:"key"`
	Summary       string    `json:"summary"`
	Status        string    `json:"status"`
	URL           string    `json:"url,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	ModifiedAt    time.Time `json:"modified_at,omitempty"`
	CompletedAt   time.Time `json:"completed_at,omitempty"`
	SyncedAt      time.Time `json:"synced_at,omitempty"`
}

// IsCompleted reports whether the task has a completion date.
func (t *Task) IsCompleted() bool {
	return !t.CompletedAt.IsZero()
}

// DateParser converts attribute values into times.
type DateParser func(attr *TaskAttribute) (time.Time, bool)

// TaskMapper maps TaskData onto a local Task.
type TaskMapper struct {
	data      *TaskData
	parseDate DateParser
}

// NewTaskMapper creates a mapper over data.
func NewTaskMapper(data *TaskData, parseDate DateParser) *TaskMapper {
	return &TaskMapper{data: data, parseDate: parseDate}
}

// HasChanges reports whether applying the mapper would change task.
func (m *TaskMapper) HasChanges(task *Task) bool {
	if task == nil {
		return true
	}
	if m.data.Value(AttributeSummary) != task.Summary {
		return true
	}
	if m.data.Value(AttributeStatus) != task.Status {
		return true
	}
	if !m.date(AttributeDateModification).Equal(task.ModifiedAt) {
		return true
	}
	return !m.date(AttributeDateCompletion).Equal(task.CompletedAt)
}

// ApplyTo copies the mapped fields onto task.
func (m *TaskMapper) ApplyTo(task *Task) {
	task.RepositoryURL = m.data.RepositoryURL
	task.TaskID = m.data.TaskID
	task.Key = m.data.Value(AttributeTaskKey)
	task.Summary = m.data.Value(AttributeSummary)
	task.Status = m.data.Value(AttributeStatus)
	task.CreatedAt = m.date(AttributeDateCreation)
	task.ModifiedAt = m.date(AttributeDateModification)
	task.CompletedAt = m.date(AttributeDateCompletion)
}

func (m *TaskMapper) date(id string) time.Time {
	if m.parseDate == nil {
		return time.Time{}
	}
	t, ok := m.parseDate(m.data.Attribute(id))
	if !ok {
		return time.Time{}
	}
	return t
}
