package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown connector kind or API version.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidRepositoryURL indicates a repository URL that does not
	// name a GitHub user and project.
	ErrInvalidRepositoryURL = errors.New("invalid repository URL")

	// Authentication Errors.

	// ErrAuthRequired indicates a write operation was attempted without credentials.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credentials were rejected by GitHub.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrPermissionDenied indicates GitHub answered 401 or 403.
	ErrPermissionDenied = errors.New("permission denied")

	// Connector Errors.

	// ErrUnexpectedResponse indicates GitHub answered 200 with a body
	// that does not carry the expected object.
	ErrUnexpectedResponse = errors.New("unexpected server response")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
