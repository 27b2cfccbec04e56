package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ghtask resources.
	uriScheme = "ghtask://"

	githubURL = "https://github.com/"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "repositories",
		Name:        "repositories",
		Description: "List of all registered task repositories",
		MIMEType:    "application/json",
	}, s.handleRepositoriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "tasks/{user}/{project}",
		Name:        "repository-tasks",
		Description: "Local task list of a GitHub repository",
		MIMEType:    "application/json",
	}, s.handleTasksResource)
}

// handleRepositoriesResource returns the registered repositories.
func (s *Server) handleRepositoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Repository == nil {
		return jsonResult(req.Params.URI, []byte("[]")), nil
	}

	repos, err := s.ports.Repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	type repositoryInfo struct {
		URL        string `json:"url"`
		Label      string `json:"label"`
		APIVersion string `json:"api_version"`
		Anonymous  bool   `json:"anonymous"`
	}

	infos := make([]repositoryInfo, len(repos))
	for i, repo := range repos {
		infos[i] = repositoryInfo{
			URL:        repo.URL,
			Label:      repo.Label,
			APIVersion: repo.APIVersion,
			Anonymous:  repo.CredentialsID == "",
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling repositories: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handleTasksResource returns the local tasks of one repository.
func (s *Server) handleTasksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	repoURL := extractRepositoryURL(req.Params.URI)
	if repoURL == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tasks, err := s.ports.Task.List(ctx, repoURL)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling tasks: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractRepositoryURL maps ghtask://tasks/{user}/{project} to the
// repository URL. Returns "" when the URI has another shape.
func extractRepositoryURL(uri string) string {
	const prefix = uriScheme + "tasks/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	parts := strings.Split(strings.TrimPrefix(uri, prefix), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return githubURL + parts[0] + "/" + parts[1]
}
