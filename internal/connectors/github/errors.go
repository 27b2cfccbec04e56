package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrInvalidServerURL indicates a repository URL not of the form
	// https://github.com/user/project. It matches domain.ErrInvalidRepositoryURL.
	ErrInvalidServerURL error = serverURLError{}

	// ErrMissingIssue indicates a response without the expected issue object.
	ErrMissingIssue = fmt.Errorf("%w: response has no issue", domain.ErrUnexpectedResponse)
)

type serverURLError struct{}

func (serverURLError) Error() string {
	return "Server URL must be in the form https://github.com/user/project"
}

func (serverURLError) Unwrap() error {
	return domain.ErrInvalidRepositoryURL
}

// ServiceError is a failed call to the legacy v2 API.
type ServiceError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Status is the HTTP status line, e.g. "404 Not Found".
	Status string

	URL string

	// Err is the cause: domain.ErrPermissionDenied for 401/403,
	// the transport error when no response was received.
	Err error
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("github: request failed: %v", e.Err)
	}
	return fmt.Sprintf("github: %s (URL: %s)", e.Status, e.URL)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError classifies a non-200 response.
func newServiceError(resp *http.Response) *ServiceError {
	svcErr := &ServiceError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		svcErr.URL = resp.Request.URL.String()
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		svcErr.Err = domain.ErrPermissionDenied
	}
	return svcErr
}

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a GitHub REST API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is lets 401/403 responses match domain.ErrPermissionDenied and 404
// responses match domain.ErrNotFound.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrPermissionDenied:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// statusCode returns the HTTP status carried by either error type.
func statusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode
	}
	return 0
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound || errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	return statusCode(err) == http.StatusForbidden
}

// IsPermissionDenied checks if the server refused the credentials.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, domain.ErrPermissionDenied)
}
