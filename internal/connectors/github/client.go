package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.IssueService = (*Client)(nil)

// ClientConfig holds configuration for the REST v3 client.
type ClientConfig struct {
	// BaseURL overrides https://api.github.com/, e.g. for GitHub Enterprise.
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient supplies the base transport; the token is layered on top.
	HTTPClient *http.Client
}

// Client wraps the go-github client behind the IssueService contract.
type Client struct {
	gh          *gh.Client
	creds       *domain.Credentials
	rateLimiter *RateLimiter
}

// NewClient creates a REST v3 client bound to creds, which may be nil.
// A token in creds is sent as a static OAuth2 bearer token.
func NewClient(cfg ClientConfig, creds *domain.Credentials) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = domain.DefaultTimeout
	}

	var tc *http.Client
	switch {
	case cfg.HTTPClient != nil && creds.HasToken():
		tc = &http.Client{
			Transport: &oauth2.Transport{Source: tokenSource(creds), Base: cfg.HTTPClient.Transport},
			Timeout:   cfg.HTTPClient.Timeout,
		}
	case cfg.HTTPClient != nil:
		tc = cfg.HTTPClient
	case creds.HasToken():
		tc = oauth2.NewClient(context.Background(), tokenSource(creds))
		tc.Timeout = cfg.Timeout
	default:
		tc = &http.Client{Timeout: cfg.Timeout}
	}

	client := gh.NewClient(tc)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: v3 base URL: %w", domain.ErrInvalidInput, err)
		}
		client.BaseURL = base
	}

	return &Client{
		gh:          client,
		creds:       creds,
		rateLimiter: NewRateLimiter(creds.HasToken()),
	}, nil
}

func tokenSource(creds *domain.Credentials) oauth2.TokenSource {
	return oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: creds.APIToken},
	)
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// SearchIssues lists issues by state, or searches them when term is set.
// Pull requests are skipped.
func (c *Client) SearchIssues(ctx context.Context, user, repo, state, term string) ([]domain.Issue, error) {
	if strings.TrimSpace(term) != "" {
		return c.searchIssues(ctx, user, repo, state, term)
	}

	opts := &gh.IssueListByRepoOptions{
		State:       state,
		Sort:        "created",
		Direction:   "asc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var issues []domain.Issue
	for {
		select {
		case <-ctx.Done():
			return issues, ctx.Err()
		default:
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		page, resp, err := c.gh.Issues.ListByRepo(ctx, user, repo, opts)
		if err != nil {
			return nil, c.wrapError(err, resp, "list issues")
		}
		c.updateRateLimitFromResponse(resp)

		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			issues = append(issues, toIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}
	return issues, nil
}

func (c *Client) searchIssues(ctx context.Context, user, repo, state, term string) ([]domain.Issue, error) {
	q := fmt.Sprintf("repo:%s/%s is:issue state:%s %s", user, repo, state, term)
	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: 100}}

	var issues []domain.Issue
	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		result, resp, err := c.gh.Search.Issues(ctx, q, opts)
		if err != nil {
			return nil, c.wrapError(err, resp, "search issues")
		}
		c.updateRateLimitFromResponse(resp)

		for _, issue := range result.Issues {
			if issue.IsPullRequest() {
				continue
			}
			issues = append(issues, toIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}
	return issues, nil
}

// ShowIssue retrieves one issue.
func (c *Client) ShowIssue(ctx context.Context, user, repo, number string) (*domain.Issue, error) {
	n, err := issueNumber(number)
	if err != nil {
		return nil, err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	issue, resp, err := c.gh.Issues.Get(ctx, user, repo, n)
	if err != nil {
		return nil, c.wrapError(err, resp, "get issue")
	}
	c.updateRateLimitFromResponse(resp)

	out := toIssue(issue)
	return &out, nil
}

// OpenIssue creates an issue from its title and body.
func (c *Client) OpenIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error) {
	if !c.creds.HasToken() {
		return nil, domain.ErrAuthRequired
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req := &gh.IssueRequest{
		Title: gh.Ptr(issue.Title),
		Body:  gh.Ptr(issue.Body),
	}
	created, resp, err := c.gh.Issues.Create(ctx, user, repo, req)
	if err != nil {
		return nil, c.wrapError(err, resp, "create issue")
	}
	c.updateRateLimitFromResponse(resp)

	out := toIssue(created)
	return &out, nil
}

// EditIssue updates the title and body of an issue.
func (c *Client) EditIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error) {
	return c.edit(ctx, user, repo, issue.Number, &gh.IssueRequest{
		Title: gh.Ptr(issue.Title),
		Body:  gh.Ptr(issue.Body),
	})
}

// CloseIssue saves pending edits, then closes the issue.
func (c *Client) CloseIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error) {
	if _, err := c.EditIssue(ctx, user, repo, issue); err != nil {
		return nil, err
	}
	return c.edit(ctx, user, repo, issue.Number, &gh.IssueRequest{State: gh.Ptr(domain.IssueStateClosed)})
}

// ReopenIssue saves pending edits, then reopens the issue.
func (c *Client) ReopenIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error) {
	if _, err := c.EditIssue(ctx, user, repo, issue); err != nil {
		return nil, err
	}
	return c.edit(ctx, user, repo, issue.Number, &gh.IssueRequest{State: gh.Ptr(domain.IssueStateOpen)})
}

func (c *Client) edit(
	ctx context.Context, user, repo, number string, req *gh.IssueRequest,
) (*domain.Issue, error) {
	if !c.creds.HasToken() {
		return nil, domain.ErrAuthRequired
	}
	n, err := issueNumber(number)
	if err != nil {
		return nil, err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	edited, resp, err := c.gh.Issues.Edit(ctx, user, repo, n, req)
	if err != nil {
		return nil, c.wrapError(err, resp, "edit issue")
	}
	c.updateRateLimitFromResponse(resp)

	out := toIssue(edited)
	return &out, nil
}

// AddLabel attaches a label; true when the returned labels contain it.
func (c *Client) AddLabel(ctx context.Context, user, repo, label, number string) (bool, error) {
	if !c.creds.HasToken() {
		return false, domain.ErrAuthRequired
	}
	n, err := issueNumber(number)
	if err != nil {
		return false, err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limit wait: %w", err)
	}

	labels, resp, err := c.gh.Issues.AddLabelsToIssue(ctx, user, repo, n, []string{label})
	if err != nil {
		return false, c.wrapError(err, resp, "add label")
	}
	c.updateRateLimitFromResponse(resp)

	for _, l := range labels {
		if l.GetName() == label {
			return true, nil
		}
	}
	return false, nil
}

// RemoveLabel detaches a label. A label already absent counts as removed.
func (c *Client) RemoveLabel(ctx context.Context, user, repo, label, number string) (bool, error) {
	if !c.creds.HasToken() {
		return false, domain.ErrAuthRequired
	}
	n, err := issueNumber(number)
	if err != nil {
		return false, err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.gh.Issues.RemoveLabelForIssue(ctx, user, repo, n, label)
	if err != nil {
		wrapped := c.wrapError(err, resp, "remove label")
		if IsNotFound(wrapped) {
			return true, nil
		}
		return false, wrapped
	}
	c.updateRateLimitFromResponse(resp)
	return true, nil
}

// ValidateCredentials checks the bound token by fetching the current user.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	if !c.creds.HasToken() {
		return domain.ErrAuthRequired
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		wrapped := c.wrapError(err, resp, "validate credentials")
		if IsUnauthorized(wrapped) {
			return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, wrapped)
		}
		return wrapped
	}
	c.updateRateLimitFromResponse(resp)
	return nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, resp *gh.Response, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}
	if resp != nil && resp.Response != nil {
		if rlErr := c.rateLimiter.CheckRateLimit(resp.Response); rlErr != nil {
			return rlErr
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// toIssue flattens a REST issue into the string fields of domain.Issue.
// Dates use the legacy layout so both backends feed the same mapper.
func toIssue(issue *gh.Issue) domain.Issue {
	out := domain.Issue{
		Number: strconv.Itoa(issue.GetNumber()),
		User:   issue.GetUser().GetLogin(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		State:  issue.GetState(),
		Votes:  strconv.Itoa(issue.GetReactions().GetPlusOne()),
	}
	if t := issue.GetCreatedAt(); !t.IsZero() {
		out.CreatedAt = domain.FormatGitHubDate(t.Time)
	}
	if t := issue.GetUpdatedAt(); !t.IsZero() {
		out.UpdatedAt = domain.FormatGitHubDate(t.Time)
	}
	if t := issue.GetClosedAt(); !t.IsZero() {
		out.ClosedAt = domain.FormatGitHubDate(t.Time)
	}
	for _, l := range issue.Labels {
		out.Labels = append(out.Labels, l.GetName())
	}
	return out
}

func issueNumber(number string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: issue number %q", domain.ErrInvalidInput, number)
	}
	return n, nil
}
