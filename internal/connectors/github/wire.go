package github

import (
	"bytes"
	"encoding/json"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// flexString decodes JSON strings, numbers and booleans into their text.
// null decodes to the empty string.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		*f = flexString(b)
	}
	return nil
}

// wireIssue is an issue as the v2 API encodes it.
type wireIssue struct {
	Number    flexString `json:"number"`
	User      flexString `json:"user"`
	Title     flexString `json:"title"`
	Body      flexString `json:"body"`
	State     flexString `json:"state"`
	CreatedAt flexString `json:"created_at"`
	UpdatedAt flexString `json:"updated_at"`
	ClosedAt  flexString `json:"closed_at"`
	Position  flexString `json:"position"`
	Votes     flexString `json:"votes"`
	Labels    []string   `json:"labels"`
}

func (w wireIssue) toDomain() domain.Issue {
	return domain.Issue{
		Number:    string(w.Number),
		User:      string(w.User),
		Title:     string(w.Title),
		Body:      string(w.Body),
		State:     string(w.State),
		CreatedAt: string(w.CreatedAt),
		UpdatedAt: string(w.UpdatedAt),
		ClosedAt:  string(w.ClosedAt),
		Position:  string(w.Position),
		Votes:     string(w.Votes),
		Labels:    w.Labels,
	}
}

// issuesResponse is the body of list and search calls.
type issuesResponse struct {
	Issues []wireIssue `json:"issues"`
}

// issueResponse is the body of show, open, edit, close and reopen calls.
type issueResponse struct {
	Issue *wireIssue `json:"issue"`
}

// labelsResponse is the body of label add and remove calls.
type labelsResponse struct {
	Labels []string `json:"labels"`
}
