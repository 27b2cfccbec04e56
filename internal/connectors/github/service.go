package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
	"github.com/custodia-labs/ghtask/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.IssueService = (*Service)(nil)

// Legacy API endpoint templates, relative to the issue root.
const (
	issueRoot   = "issues/"
	pathList    = "list/"
	pathSearch  = "search/"
	pathShow    = "show/"
	pathOpen    = "open/"
	pathEdit    = "edit/"
	pathClose   = "close/"
	pathReopen  = "reopen/"
	pathAddLbl  = "label/add/"
	pathRmLbl   = "label/remove/"
	pathUser    = "user/show/"
	formLogin   = "login"
	formToken   = "token"
	formTitle   = "title"
	formBody    = "body"
	contentForm = "application/x-www-form-urlencoded"
)

// ServiceConfig holds configuration for the legacy v2 service.
type ServiceConfig struct {
	// BaseURL is the API root (default: https://github.com/api/v2/json/).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Service is a client for the legacy v2 JSON issue API.
type Service struct {
	client  *http.Client
	baseURL string
	creds   *domain.Credentials
}

// NewService creates a v2 service bound to creds, which may be nil.
func NewService(cfg ServiceConfig, creds *domain.Credentials) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultV2BaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = domain.DefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if creds.HasToken() {
		logger.RegisterSecret(creds.APIToken)
		logger.RegisterSecret(url.QueryEscape(creds.APIToken))
	}

	return &Service{
		client:  client,
		baseURL: cfg.BaseURL,
		creds:   creds,
	}
}

// SearchIssues lists or searches the issues of user/repo in one state.
func (s *Service) SearchIssues(ctx context.Context, user, repo, state, term string) ([]domain.Issue, error) {
	var endpoint string
	if strings.TrimSpace(term) == "" {
		endpoint = s.issueURL(pathList, user, repo, state)
	} else {
		endpoint = s.issueURL(pathSearch, user, repo, state, term)
	}

	var out issuesResponse
	if _, err := s.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}

	issues := make([]domain.Issue, 0, len(out.Issues))
	for _, w := range out.Issues {
		issues = append(issues, w.toDomain())
	}
	return issues, nil
}

// ShowIssue retrieves one issue.
func (s *Service) ShowIssue(ctx context.Context, user, repo, number string) (*domain.Issue, error) {
	return s.issueCall(ctx, http.MethodGet, s.issueURL(pathShow, user, repo, number), nil)
}

// OpenIssue creates an issue from its title and body.
func (s *Service) OpenIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error) {
	form, err := s.authForm()
	if err != nil {
		return nil, err
	}
	form.Set(formBody, issue.Body)
	form.Set(formTitle, issue.Title)
	return s.issueCall(ctx, http.MethodPost, s.issueURL(pathOpen, user, repo), form)
}

// EditIssue updates the title and body of an issue.
func (s *Service) EditIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error) {
	form, err := s.authForm()
	if err != nil {
		return nil, err
	}
	form.Set(formBody, issue.Body)
	form.Set(formTitle, issue.Title)
	return s.issueCall(ctx, http.MethodPost, s.issueURL(pathEdit, user, repo, issue.Number), form)
}

// CloseIssue saves pending edits, then closes the issue.
func (s *Service) CloseIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error) {
	return s.changeState(ctx, pathClose, user, repo, issue)
}

// ReopenIssue saves pending edits, then reopens the issue.
func (s *Service) ReopenIssue(ctx context.Context, user, repo string, issue domain.Issue) (*domain.Issue, error) {
	return s.changeState(ctx, pathReopen, user, repo, issue)
}

func (s *Service) changeState(
	ctx context.Context, op, user, repo string, issue domain.Issue,
) (*domain.Issue, error) {
	if _, err := s.EditIssue(ctx, user, repo, issue); err != nil {
		return nil, err
	}
	form, err := s.authForm()
	if err != nil {
		return nil, err
	}
	return s.issueCall(ctx, http.MethodPost, s.issueURL(op, user, repo, issue.Number), form)
}

// AddLabel attaches a label; true when the returned labels contain it.
func (s *Service) AddLabel(ctx context.Context, user, repo, label, number string) (bool, error) {
	labels, err := s.labelCall(ctx, pathAddLbl, user, repo, label, number)
	if err != nil {
		return false, err
	}
	return slices.Contains(labels, label), nil
}

// RemoveLabel detaches a label; true when the returned labels lack it.
func (s *Service) RemoveLabel(ctx context.Context, user, repo, label, number string) (bool, error) {
	labels, err := s.labelCall(ctx, pathRmLbl, user, repo, label, number)
	if err != nil {
		return false, err
	}
	return !slices.Contains(labels, label), nil
}

func (s *Service) labelCall(ctx context.Context, op, user, repo, label, number string) ([]string, error) {
	form, err := s.authForm()
	if err != nil {
		return nil, err
	}
	var out labelsResponse
	if _, err := s.do(ctx, http.MethodPost, s.issueURL(op, user, repo, label, number), form, &out); err != nil {
		return nil, err
	}
	return out.Labels, nil
}

// ValidateCredentials checks the bound login and token with user/show.
func (s *Service) ValidateCredentials(ctx context.Context) error {
	form, err := s.authForm()
	if err != nil {
		return err
	}
	endpoint := s.baseURL + pathUser + url.PathEscape(s.creds.Username)
	if _, err := s.do(ctx, http.MethodPost, endpoint, form, nil); err != nil {
		if IsPermissionDenied(err) {
			return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
		}
		return err
	}
	return nil
}

// issueURL joins escaped path segments onto an issue endpoint template.
func (s *Service) issueURL(op string, segments ...string) string {
	var b strings.Builder
	b.WriteString(s.baseURL)
	b.WriteString(issueRoot)
	b.WriteString(op)
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// authForm starts a write request body with the login and token.
func (s *Service) authForm() (url.Values, error) {
	if !s.creds.HasToken() {
		return nil, domain.ErrAuthRequired
	}
	form := url.Values{}
	form.Set(formLogin, s.creds.Username)
	form.Set(formToken, s.creds.APIToken)
	return form, nil
}

func (s *Service) issueCall(ctx context.Context, method, endpoint string, form url.Values) (*domain.Issue, error) {
	var out issueResponse
	data, err := s.do(ctx, method, endpoint, form, &out)
	if err != nil {
		return nil, err
	}
	if out.Issue == nil {
		logger.Error("github: no issue in response from %s: %s", endpoint, data)
		return nil, fmt.Errorf("%s: %w", endpoint, ErrMissingIssue)
	}
	issue := out.Issue.toDomain()
	return &issue, nil
}

// do executes one request and decodes a 200 response into out.
// The raw body is returned for logging.
func (s *Service) do(ctx context.Context, method, endpoint string, form url.Values, out any) ([]byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", contentForm)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ServiceError{URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newServiceError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if form != nil {
		logger.Debug("github: %s %s %s", method, endpoint, form.Encode())
	} else {
		logger.Debug("github: %s %s", method, endpoint)
	}
	logger.Debug("github: response %s", data)

	if out == nil {
		return data, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Error("github: unexpected response from %s: %s", endpoint, data)
		return data, fmt.Errorf("%w: %w", domain.ErrUnexpectedResponse, err)
	}
	return data, nil
}
