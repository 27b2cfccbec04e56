package domain

// TaskOperation is a state change that can be submitted with task data.
type TaskOperation string

// Operations supported by GitHub issues.
const (
	OperationLeave  TaskOperation = "LEAVE"
	OperationReopen TaskOperation = "REOPEN"
	OperationClose  TaskOperation = "CLOSE"
)

var operationLabels = map[TaskOperation]string{
	OperationLeave:  "Leave as ",
	OperationReopen: "Reopen",
	OperationClose:  "Close",
}

// ID returns the operation identifier.
func (o TaskOperation) ID() string {
	return string(o)
}

// Label returns the display label.
func (o TaskOperation) Label() string {
	return operationLabels[o]
}

// AllOperations returns every operation in display order.
func AllOperations() []TaskOperation {
	return []TaskOperation{OperationLeave, OperationReopen, OperationClose}
}

// OperationFromID looks up an operation by id.
// Returns false if the id is empty or unknown.
func OperationFromID(id string) (TaskOperation, bool) {
	for _, op := range AllOperations() {
		if op.ID() == id {
			return op, true
		}
	}
	return "", false
}
