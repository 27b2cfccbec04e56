package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/ghtask/internal/adapters/driven/auth"
	"github.com/custodia-labs/ghtask/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghtask/internal/connectors/github"
	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

const testRepoURL = "https://github.com/octocat/hello"

// fakeIssues is an in-memory issue tracker.
type fakeIssues struct {
	mu      sync.Mutex
	issues  map[string]*domain.Issue
	next    int
	now     time.Time
	err     error
	calls   []string
	creds   []*domain.Credentials
	validOK bool
}

func newFakeIssues() *fakeIssues {
	return &fakeIssues{
		issues:  make(map[string]*domain.Issue),
		next:    1,
		now:     time.Date(2010, 2, 4, 21, 0, 0, 0, time.FixedZone("PST", -8*3600)),
		validOK: true,
	}
}

// seed adds an issue and returns its number.
func (f *fakeIssues) seed(title, state string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := strconv.Itoa(f.next)
	f.next++
	stamp := domain.FormatGitHubDate(f.now)
	issue := &domain.Issue{Number: n, Title: title, State: state, CreatedAt: stamp, UpdatedAt: stamp}
	if state == domain.IssueStateClosed {
		issue.ClosedAt = stamp
	}
	f.issues[n] = issue
	return n
}

// touch advances the clock and marks issue n updated.
func (f *fakeIssues) touch(n, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(time.Minute)
	f.issues[n].Title = title
	f.issues[n].UpdatedAt = domain.FormatGitHubDate(f.now)
}

func (f *fakeIssues) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeIssues) SearchIssues(_ context.Context, _, _, state, term string) ([]domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("search " + state); err != nil {
		return nil, err
	}
	var out []domain.Issue
	for _, issue := range f.issues {
		if issue.State == state && strings.Contains(issue.Title, term) {
			out = append(out, *issue)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (f *fakeIssues) ShowIssue(_ context.Context, _, _, number string) (*domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("show " + number); err != nil {
		return nil, err
	}
	issue, ok := f.issues[number]
	if !ok {
		return nil, fmt.Errorf("issue %s: %w", number, domain.ErrNotFound)
	}
	cp := *issue
	return &cp, nil
}

func (f *fakeIssues) OpenIssue(_ context.Context, _, _ string, issue domain.Issue) (*domain.Issue, error) {
	f.mu.Lock()
	err := f.record("open")
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	n := f.seed(issue.Title, domain.IssueStateOpen)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues[n].Body = issue.Body
	cp := *f.issues[n]
	return &cp, nil
}

func (f *fakeIssues) EditIssue(_ context.Context, _, _ string, issue domain.Issue) (*domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("edit " + issue.Number); err != nil {
		return nil, err
	}
	stored, ok := f.issues[issue.Number]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.now = f.now.Add(time.Minute)
	stored.Title, stored.Body = issue.Title, issue.Body
	stored.UpdatedAt = domain.FormatGitHubDate(f.now)
	cp := *stored
	return &cp, nil
}

func (f *fakeIssues) setState(issue domain.Issue, state, call string) (*domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(call + " " + issue.Number); err != nil {
		return nil, err
	}
	stored := f.issues[issue.Number]
	f.now = f.now.Add(time.Minute)
	stored.State = state
	stored.UpdatedAt = domain.FormatGitHubDate(f.now)
	stored.ClosedAt = ""
	if state == domain.IssueStateClosed {
		stored.ClosedAt = stored.UpdatedAt
	}
	cp := *stored
	return &cp, nil
}

func (f *fakeIssues) CloseIssue(_ context.Context, _, _ string, issue domain.Issue) (*domain.Issue, error) {
	return f.setState(issue, domain.IssueStateClosed, "close")
}

func (f *fakeIssues) ReopenIssue(_ context.Context, _, _ string, issue domain.Issue) (*domain.Issue, error) {
	return f.setState(issue, domain.IssueStateOpen, "reopen")
}

func (f *fakeIssues) AddLabel(_ context.Context, _, _, label, number string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("label+ " + label); err != nil {
		return false, err
	}
	f.issues[number].Labels = append(f.issues[number].Labels, label)
	return true, nil
}

func (f *fakeIssues) RemoveLabel(_ context.Context, _, _, label, number string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("label- " + label); err != nil {
		return false, err
	}
	issue := f.issues[number]
	if !issue.HasLabel(label) {
		return false, nil
	}
	kept := issue.Labels[:0]
	for _, l := range issue.Labels {
		if l != label {
			kept = append(kept, l)
		}
	}
	issue.Labels = kept
	return true, nil
}

func (f *fakeIssues) ValidateCredentials(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("validate"); err != nil {
		return err
	}
	if !f.validOK {
		return domain.ErrAuthInvalid
	}
	return nil
}

// fakeFactory hands out one fakeIssues and records the credentials it was given.
type fakeFactory struct {
	issues *fakeIssues
}

func (f *fakeFactory) ServiceFor(_ domain.TaskRepository, creds *domain.Credentials) (driven.IssueService, error) {
	f.issues.mu.Lock()
	f.issues.creds = append(f.issues.creds, creds)
	f.issues.mu.Unlock()
	return f.issues, nil
}

// fixture wires every service over memory stores and a fake tracker.
type fixture struct {
	issues    *fakeIssues
	repoStore *memory.RepositoryStore
	credStore *memory.CredentialsStore
	queries   *memory.QueryStore
	tasks     *memory.TaskStore
	connector *github.Connector

	repoService  *RepositoryService
	queryService *QueryService
	taskService  *TaskService
}

func newFixture() *fixture {
	f := &fixture{
		issues:    newFakeIssues(),
		repoStore: memory.NewRepositoryStore(),
		credStore: memory.NewCredentialsStore(),
		queries:   memory.NewQueryStore(),
		tasks:     memory.NewTaskStore(),
	}
	f.connector = github.New(&fakeFactory{issues: f.issues})
	providers := auth.NewFactory(f.credStore)

	f.repoService = NewRepositoryService(f.repoStore, f.credStore, f.queries, f.tasks, f.connector, providers)
	f.queryService = NewQueryService(f.queries, f.repoStore, f.tasks, f.connector, providers)
	f.taskService = NewTaskService(f.repoStore, f.tasks, f.connector, providers)
	return f
}

// addRepo registers testRepoURL with credentials.
func (f *fixture) addRepo(ctx context.Context) *domain.TaskRepository {
	repo, err := f.repoService.Add(ctx, domain.TaskRepository{URL: testRepoURL},
		&domain.Credentials{Username: "octocat", APIToken: "secret"})
	if err != nil {
		panic(err)
	}
	return repo
}
