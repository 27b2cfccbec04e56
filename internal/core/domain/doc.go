// Package domain defines the core entities for ghtask.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Issue: A GitHub tracker entry as returned by the issue APIs
//   - TaskRepository: A configured GitHub project backing a task list
//   - Query: A saved status/text filter over a repository
//   - TaskData: The generic key/value representation of a repository item
//   - Task: An entry of the local task list
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
