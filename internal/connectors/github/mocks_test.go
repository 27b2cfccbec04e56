package github

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// mockIssueService implements driven.IssueService for testing.
// Calls records the operations invoked, in order.
type mockIssueService struct {
	issues   map[string][]domain.Issue // by state
	issue    *domain.Issue
	labelOK  bool
	err      error
	validErr error
	calls    []string
	lastTerm string
	posted   domain.Issue
}

func (m *mockIssueService) SearchIssues(_ context.Context, _, _, state, term string) ([]domain.Issue, error) {
	m.calls = append(m.calls, "search:"+state)
	m.lastTerm = term
	return m.issues[state], m.err
}

func (m *mockIssueService) ShowIssue(_ context.Context, _, _, number string) (*domain.Issue, error) {
	m.calls = append(m.calls, "show:"+number)
	return m.issue, m.err
}

func (m *mockIssueService) OpenIssue(_ context.Context, _, _ string, issue domain.Issue) (*domain.Issue, error) {
	m.calls = append(m.calls, "open")
	m.posted = issue
	return m.issue, m.err
}

func (m *mockIssueService) EditIssue(_ context.Context, _, _ string, issue domain.Issue) (*domain.Issue, error) {
	m.calls = append(m.calls, "edit:"+issue.Number)
	m.posted = issue
	return m.issue, m.err
}

func (m *mockIssueService) CloseIssue(_ context.Context, _, _ string, issue domain.Issue) (*domain.Issue, error) {
	m.calls = append(m.calls, "close:"+issue.Number)
	m.posted = issue
	return m.issue, m.err
}

func (m *mockIssueService) ReopenIssue(_ context.Context, _, _ string, issue domain.Issue) (*domain.Issue, error) {
	m.calls = append(m.calls, "reopen:"+issue.Number)
	m.posted = issue
	return m.issue, m.err
}

func (m *mockIssueService) AddLabel(_ context.Context, _, _, label, number string) (bool, error) {
	m.calls = append(m.calls, "label+:"+label+":"+number)
	return m.labelOK, m.err
}

func (m *mockIssueService) RemoveLabel(_ context.Context, _, _, label, number string) (bool, error) {
	m.calls = append(m.calls, "label-:"+label+":"+number)
	return m.labelOK, m.err
}

func (m *mockIssueService) ValidateCredentials(_ context.Context) error {
	m.calls = append(m.calls, "validate")
	return m.validErr
}

// mockFactory always returns the same service.
type mockFactory struct {
	svc   driven.IssueService
	err   error
	creds *domain.Credentials
}

func (f *mockFactory) ServiceFor(_ domain.TaskRepository, creds *domain.Credentials) (driven.IssueService, error) {
	f.creds = creds
	return f.svc, f.err
}
