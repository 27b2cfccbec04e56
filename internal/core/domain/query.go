package domain

import (
	"fmt"
	"time"
)

// QueryStatusAll selects open and closed issues.
const QueryStatusAll = "all"

// Query is a saved filter over a task repository.
type Query struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// RepositoryURL links to the TaskRepository the query runs against.
	RepositoryURL string `json:"repository_url"`

	// Summary is the display title.
	Summary string `json:"summary"`

	// Status is "open", "closed" or "all".
	Status string `json:"status"`

	// QueryText is the search term. Blank lists every issue.
	QueryText string `json:"query_text"`

	// CreatedAt is when the query was saved.
	CreatedAt time.Time `json:"created_at"`
}

// Statuses expands the query status into the issue states to search.
func (q *Query) Statuses() []string {
	if q.Status == QueryStatusAll {
		return []string{IssueStateOpen, IssueStateClosed}
	}
	return []string{q.Status}
}

// DefaultSummary returns "<status>:<query text>".
func (q *Query) DefaultSummary() string {
	return q.Status + ":" + q.QueryText
}

// Validate checks the query status.
func (q *Query) Validate() error {
	if q.Status != QueryStatusAll && !IsValidIssueState(q.Status) {
		return fmt.Errorf("%w: status must be open, closed or all, got %q", ErrInvalidInput, q.Status)
	}
	return nil
}
