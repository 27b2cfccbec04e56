package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// QueryIssuesInput is the input schema for the query_issues tool.
type QueryIssuesInput struct {
	RepositoryURL string `json:"repository_url" jsonschema:"registered repository, e.g. https://github.com/user/project"`
	Status        string `json:"status,omitempty" jsonschema:"open, closed or all (default open)"`
	Query         string `json:"query,omitempty" jsonschema:"search term; empty lists every issue"`
}

// QueryIssuesOutput is the output schema for the query_issues tool.
type QueryIssuesOutput struct {
	Tasks   []TaskOutput `json:"tasks"`
	Count   int          `json:"count"`
	Added   int          `json:"added"`
	Updated int          `json:"updated"`
}

// TaskOutput is one task of a query result.
type TaskOutput struct {
	TaskID   string `json:"task_id"`
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	URL      string `json:"url"`
	Modified string `json:"modified,omitempty"`
}

// GetTaskInput is the input schema for the get_task tool.
type GetTaskInput struct {
	TaskURL       string `json:"task_url,omitempty" jsonschema:"task URL; alternative to repository_url and task_id"`
	RepositoryURL string `json:"repository_url,omitempty" jsonschema:"registered repository"`
	TaskID        string `json:"task_id,omitempty" jsonschema:"issue number"`
}

// GetTaskOutput is the output schema for the get_task tool.
type GetTaskOutput struct {
	TaskID      string            `json:"task_id"`
	URL         string            `json:"url"`
	Attributes  map[string]string `json:"attributes"`
	Operations  []string          `json:"operations,omitempty"`
	Description string            `json:"description,omitempty"`
}

// FindLinksInput is the input schema for the find_task_links tool.
type FindLinksInput struct {
	RepositoryURL string `json:"repository_url" jsonschema:"repository the text belongs to"`
	Text          string `json:"text" jsonschema:"text containing references like #12 or user/project#12"`
}

// FindLinksOutput is the output schema for the find_task_links tool.
type FindLinksOutput struct {
	Links []LinkOutput `json:"links"`
}

// LinkOutput is one task reference found in text.
type LinkOutput struct {
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	Reference     string `json:"reference"`
	RepositoryURL string `json:"repository_url,omitempty"`
	TaskID        string `json:"task_id,omitempty"`
	URL           string `json:"url"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_issues",
		Description: "Search the issues of a registered GitHub repository and refresh the local task list",
	}, s.handleQueryIssues)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_task",
		Description: "Read one GitHub issue as task data",
	}, s.handleGetTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_task_links",
		Description: "Find issue references such as #12 or user/project#12 in text",
	}, s.handleFindLinks)
}

// handleQueryIssues handles the query_issues tool invocation.
func (s *Server) handleQueryIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryIssuesInput,
) (*mcp.CallToolResult, QueryIssuesOutput, error) {
	query := domain.Query{
		RepositoryURL: input.RepositoryURL,
		Status:        input.Status,
		QueryText:     input.Query,
	}

	result, err := s.ports.Query.RunAdHoc(ctx, query, nil)
	if err != nil {
		return nil, QueryIssuesOutput{}, err
	}

	output := QueryIssuesOutput{
		Tasks:   make([]TaskOutput, len(result.Tasks)),
		Count:   len(result.Tasks),
		Added:   result.Added,
		Updated: result.Updated,
	}
	for i, task := range result.Tasks {
		output.Tasks[i] = TaskOutput{
			TaskID:  task.TaskID,
			Summary: task.Summary,
			Status:  task.Status,
			URL:     task.URL,
		}
		if output.Tasks[i].URL == "" {
			output.Tasks[i].URL = s.ports.Task.TaskURL(task.RepositoryURL, task.TaskID)
		}
		if !task.ModifiedAt.IsZero() {
			output.Tasks[i].Modified = task.ModifiedAt.Format(time.RFC3339)
		}
	}

	return nil, output, nil
}

// handleGetTask handles the get_task tool invocation.
func (s *Server) handleGetTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetTaskInput,
) (*mcp.CallToolResult, GetTaskOutput, error) {
	repoURL, taskID := input.RepositoryURL, input.TaskID
	if input.TaskURL != "" {
		var err error
		repoURL, taskID, err = s.ports.Task.Resolve(input.TaskURL)
		if err != nil {
			return nil, GetTaskOutput{}, err
		}
	}
	if repoURL == "" || taskID == "" {
		return nil, GetTaskOutput{}, fmt.Errorf("%w: task_url or repository_url and task_id required",
			domain.ErrInvalidInput)
	}

	data, err := s.ports.Task.Get(ctx, repoURL, taskID)
	if err != nil {
		return nil, GetTaskOutput{}, err
	}

	output := GetTaskOutput{
		TaskID:     data.TaskID,
		URL:        s.ports.Task.TaskURL(repoURL, data.TaskID),
		Attributes: make(map[string]string, len(data.Attributes)),
	}
	for _, attr := range data.Attributes {
		switch attr.ID {
		case domain.AttributeOperation:
			for _, op := range domain.AllOperations() {
				if _, ok := attr.Options[op.ID()]; ok && op != domain.OperationLeave {
					output.Operations = append(output.Operations, op.ID())
				}
			}
		case domain.AttributeDescription:
			output.Description = attr.Value()
		default:
			output.Attributes[attr.ID] = attr.Value()
		}
	}

	return nil, output, nil
}

// handleFindLinks handles the find_task_links tool invocation.
func (s *Server) handleFindLinks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindLinksInput,
) (*mcp.CallToolResult, FindLinksOutput, error) {
	links, err := s.ports.Task.Links(ctx, input.RepositoryURL, input.Text, -1, 0)
	if err != nil {
		return nil, FindLinksOutput{}, err
	}

	output := FindLinksOutput{Links: make([]LinkOutput, len(links))}
	for i, l := range links {
		out := LinkOutput{
			Offset:        l.Offset,
			Length:        l.Length,
			Reference:     input.Text[l.Offset : l.Offset+l.Length],
			RepositoryURL: l.RepositoryURL,
			TaskID:        l.TaskID,
			URL:           l.WebURL,
		}
		if out.URL == "" {
			out.URL = s.ports.Task.TaskURL(l.RepositoryURL, l.TaskID)
		}
		output.Links[i] = out
	}

	return nil, output, nil
}
