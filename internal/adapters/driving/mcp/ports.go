package mcp

import (
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query runs issue queries.
	Query driving.QueryService

	// Task reads tasks and finds task links.
	Task driving.TaskService

	// Repository lists registered repositories. Optional.
	Repository driving.RepositoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Task == nil {
		return ErrMissingTaskService
	}
	return nil
}
