package github

import "github.com/custodia-labs/ghtask/internal/core/domain"

// TaskAttributeDef describes how one issue field appears in task data.
type TaskAttributeDef struct {
	Name     string
	Label    string
	ID       string
	Type     string
	ReadOnly bool

	// InitTask marks attributes created for a new, unsubmitted task.
	InitTask bool
}

// Metadata returns the attribute metadata for this definition.
func (d TaskAttributeDef) Metadata() domain.AttributeMetadata {
	return domain.AttributeMetadata{
		Type:     d.Type,
		Kind:     domain.KindDefault,
		Label:    d.Label,
		ReadOnly: d.ReadOnly,
	}
}

// Issue attributes, in task data order.
var (
	AttrKey = TaskAttributeDef{
		Name: "KEY", Label: "Key", ID: domain.AttributeTaskKey,
		Type: domain.TypeShortText, ReadOnly: true, InitTask: true,
	}
	AttrTitle = TaskAttributeDef{
		Name: "TITLE", Label: "Summary", ID: domain.AttributeSummary,
		Type: domain.TypeShortText, InitTask: true,
	}
	AttrBody = TaskAttributeDef{
		Name: "BODY", Label: "Description", ID: domain.AttributeDescription,
		Type: domain.TypeLongRichText, InitTask: true,
	}
	AttrCreationDate = TaskAttributeDef{
		Name: "CREATION_DATE", Label: "Created", ID: domain.AttributeDateCreation,
		Type: domain.TypeDateTime, ReadOnly: true,
	}
	AttrModificationDate = TaskAttributeDef{
		Name: "MODIFICATION_DATE", Label: "Modified", ID: domain.AttributeDateModification,
		Type: domain.TypeDateTime, ReadOnly: true,
	}
	AttrClosedDate = TaskAttributeDef{
		Name: "CLOSED_DATE", Label: "Closed", ID: domain.AttributeDateCompletion,
		Type: domain.TypeDateTime, ReadOnly: true,
	}
	AttrStatus = TaskAttributeDef{
		Name: "STATUS", Label: "Status", ID: domain.AttributeStatus,
		Type: domain.TypeShortText, InitTask: true,
	}
)

// TaskAttributes returns every issue attribute definition in order.
func TaskAttributes() []TaskAttributeDef {
	return []TaskAttributeDef{
		AttrKey, AttrTitle, AttrBody,
		AttrCreationDate, AttrModificationDate, AttrClosedDate,
		AttrStatus,
	}
}
