// Package mcp provides an MCP (Model Context Protocol) server adapter for ghtask.
// It lets AI assistants query GitHub issues, read tasks and resolve issue
// references through the registered task repositories.
package mcp

import "errors"

var (
	// ErrMissingQueryService is returned when the query service is not provided.
	ErrMissingQueryService = errors.New("mcp: query service is required")

	// ErrMissingTaskService is returned when the task service is not provided.
	ErrMissingTaskService = errors.New("mcp: task service is required")
)
