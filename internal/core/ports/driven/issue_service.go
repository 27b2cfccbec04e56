package driven

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// IssueService is a client for one GitHub issue API.
// Each instance is bound to the credentials it was created with; write
// operations fail with domain.ErrAuthRequired when it has none.
type IssueService interface {
	// SearchIssues lists the issues of user/repo in the given state.
	// A blank term lists every issue, otherwise only matching ones.
	SearchIssues(ctx context.Context, user, repo, state, term string) ([]domain.Issue, error)

	// ShowIssue retrieves a single issue by number.
	ShowIssue(ctx context.Context, user, repo, number string) (*domain.Issue, error)

	// OpenIssue creates a new issue from its title and body.
	OpenIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error)

	// EditIssue updates the title and body of an existing issue.
	EditIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error)

	// CloseIssue saves pending edits, then closes the issue.
	CloseIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error)

	// ReopenIssue saves pending edits, then reopens the issue.
	ReopenIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error)

	// AddLabel attaches a label to an issue.
	// Returns true if the label is present afterwards.
	AddLabel(ctx context.Context, user, repo, label, number string) (bool, error)

	// RemoveLabel detaches a label from an issue.
	// Returns true if the label is absent afterwards.
	RemoveLabel(ctx context.Context, user, repo, label, number string) (bool, error)

	// ValidateCredentials checks that the bound credentials are accepted.
	ValidateCredentials(ctx context.Context) error
}

// IssueServiceFactory creates the IssueService for a repository.
type IssueServiceFactory interface {
	// ServiceFor returns a service speaking the repository's API version.
	// creds may be nil for anonymous access.
	// Returns domain.ErrUnsupportedType for an unknown API version.
	ServiceFor(repo domain.TaskRepository, creds *domain.Credentials) (IssueService, error)
}
