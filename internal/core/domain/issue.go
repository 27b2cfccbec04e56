package domain

import (
	"fmt"
	"strings"
	"time"
)

// Issue states understood by GitHub.
const (
	IssueStateOpen   = "open"
	IssueStateClosed = "closed"
)

// GitHubDateLayout is the timestamp format of the legacy issues API,
// e.g. "2010/02/04 21:03:54 -0800".
const GitHubDateLayout = "2006/01/02 15:04:05 -0700"

// Issue is a GitHub tracker entry.
// All fields are strings as delivered by the legacy API; an empty string
// stands for a missing (null) value.
type Issue struct {
	Number    string   `json:"number"`
	User      string   `json:"user"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	State     string   `json:"state"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
	ClosedAt  string   `json:"closed_at,omitempty"`
	Position  string   `json:"position,omitempty"`
	Votes     string   `json:"votes,omitempty"`
	Labels    []string `json:"labels,omitempty"`
}

// Issues is the result of a list or search call.
type Issues struct {
	Issues []Issue `json:"issues"`
}

// String identifies the issue for logs.
func (i Issue) String() string {
	return fmt.Sprintf("Issue #%s, position %s: %s", i.Number, i.Position, i.Title)
}

// IsOpen reports whether the issue is open.
func (i Issue) IsOpen() bool {
	return strings.EqualFold(i.State, IssueStateOpen)
}

// IsClosed reports whether the issue is closed.
func (i Issue) IsClosed() bool {
	return strings.EqualFold(i.State, IssueStateClosed)
}

// HasLabel reports whether the issue carries the given label.
func (i Issue) HasLabel(label string) bool {
	for _, l := range i.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// ParseGitHubDate parses a legacy API timestamp.
func ParseGitHubDate(s string) (time.Time, error) {
	return time.Parse(GitHubDateLayout, strings.TrimSpace(s))
}

// FormatGitHubDate formats t in the legacy API layout.
func FormatGitHubDate(t time.Time) string {
	return t.Format(GitHubDateLayout)
}

// IsValidIssueState reports whether s is a state GitHub can filter by.
func IsValidIssueState(s string) bool {
	return s == IssueStateOpen || s == IssueStateClosed
}
