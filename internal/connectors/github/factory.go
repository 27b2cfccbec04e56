package github

import (
	"fmt"
	"net/http"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure ServiceFactory implements the interface.
var _ driven.IssueServiceFactory = (*ServiceFactory)(nil)

// ServiceFactory builds the issue service matching a repository's API version.
type ServiceFactory struct {
	settings   domain.GitHubSettings
	httpClient *http.Client
}

// NewServiceFactory creates a factory configured from settings.
func NewServiceFactory(settings domain.GitHubSettings) *ServiceFactory {
	return &ServiceFactory{settings: settings}
}

// WithHTTPClient makes every service share one HTTP client.
func (f *ServiceFactory) WithHTTPClient(client *http.Client) *ServiceFactory {
	f.httpClient = client
	return f
}

// ServiceFor returns the legacy Service for v2 repositories and the
// go-github Client for v3 ones. An empty version uses the configured default.
func (f *ServiceFactory) ServiceFor(repo domain.TaskRepository, creds *domain.Credentials) (driven.IssueService, error) {
	version := repo.APIVersion
	if version == "" {
		version = f.settings.APIVersion
	}
	if version == "" {
		version = domain.DefaultAPIVersion
	}

	switch version {
	case domain.APIVersionV2:
		return NewService(ServiceConfig{
			BaseURL:    f.settings.V2BaseURL,
			Timeout:    f.settings.TimeoutDuration(),
			HTTPClient: f.httpClient,
		}, creds), nil
	case domain.APIVersionV3:
		return NewClient(ClientConfig{
			BaseURL:    f.settings.V3BaseURL,
			Timeout:    f.settings.TimeoutDuration(),
			HTTPClient: f.httpClient,
		}, creds)
	default:
		return nil, fmt.Errorf("%w: api version %q", domain.ErrUnsupportedType, version)
	}
}
