package domain

// Common attribute ids shared by every connector.
const (
	AttributeTaskKey          = "task.common.key"
	AttributeSummary          = "task.common.summary"
	AttributeDescription      = "task.common.description"
	AttributeDateCreation     = "task.common.date.created"
	AttributeDateModification = "task.common.date.modified"
	AttributeDateCompletion   = "task.common.date.completed"
	AttributeStatus           = "task.common.status"
	AttributeOperation        = "task.common.operation"
)

// Attribute value types.
const (
	TypeShortText    = "shortText"
	TypeLongRichText = "longRichText"
	TypeDateTime     = "dateTime"
	TypeSingleSelect = "singleSelect"
)

// KindDefault marks attributes shown in the default attribute section.
const KindDefault = "task.common.kind.default"

// AttributeMetadata describes how an attribute is presented and edited.
type AttributeMetadata struct {
	Type     string `json:"type" yaml:"type"`
	Kind     string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label    string `json:"label" yaml:"label"`
	ReadOnly bool   `json:"read_only" yaml:"read_only"`
}

// TaskAttribute is one key/value entry of TaskData.
type TaskAttribute struct {
	ID     string            `json:"id" yaml:"id"`
	Values []string          `json:"values,omitempty" yaml:"values,omitempty"`
	Meta   AttributeMetadata `json:"meta" yaml:"meta"`

	// Options maps selectable values to labels (operation attribute).
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Value returns the first value, or "" if none is set.
func (a *TaskAttribute) Value() string {
	if a == nil || len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// SetValue replaces all values with v.
func (a *TaskAttribute) SetValue(v string) {
	a.Values = []string{v}
}

// AddValue appends v.
func (a *TaskAttribute) AddValue(v string) {
	a.Values = append(a.Values, v)
}

// PutOption registers a selectable value.
func (a *TaskAttribute) PutOption(value, label string) {
	if a.Options == nil {
		a.Options = make(map[string]string)
	}
	a.Options[value] = label
}

// TaskData is the generic representation of a repository item.
// Attributes keep their creation order.
type TaskData struct {
	ConnectorKind string           `json:"connector_kind" yaml:"connector_kind"`
	RepositoryURL string           `json:"repository_url" yaml:"repository_url"`
	TaskID        string           `json:"task_id" yaml:"task_id"`
	Version       string           `json:"version" yaml:"version"`
	Partial       bool             `json:"partial" yaml:"partial"`
	Attributes    []*TaskAttribute `json:"attributes" yaml:"attributes"`
}

// NewTaskData creates empty task data. An empty taskID denotes a task that
// does not exist in the repository yet.
func NewTaskData(connectorKind, repositoryURL, taskID string) *TaskData {
	return &TaskData{
		ConnectorKind: connectorKind,
		RepositoryURL: repositoryURL,
		TaskID:        taskID,
	}
}

// IsNew reports whether the task has not been submitted yet.
func (d *TaskData) IsNew() bool {
	return d.TaskID == ""
}

// CreateAttribute adds an attribute, replacing any existing one with the same id.
func (d *TaskData) CreateAttribute(id string) *TaskAttribute {
	attr := &TaskAttribute{ID: id}
	for i, existing := range d.Attributes {
		if existing.ID == id {
			d.Attributes[i] = attr
			return attr
		}
	}
	d.Attributes = append(d.Attributes, attr)
	return attr
}

// Attribute returns the attribute with the given id, or nil.
func (d *TaskData) Attribute(id string) *TaskAttribute {
	for _, attr := range d.Attributes {
		if attr.ID == id {
			return attr
		}
	}
	return nil
}

// Value returns the first value of the attribute with the given id.
func (d *TaskData) Value(id string) string {
	return d.Attribute(id).Value()
}

// SetValue sets an attribute value, creating the attribute when missing.
func (d *TaskData) SetValue(id, value string) {
	attr := d.Attribute(id)
	if attr == nil {
		attr = d.CreateAttribute(id)
	}
	attr.SetValue(value)
}
