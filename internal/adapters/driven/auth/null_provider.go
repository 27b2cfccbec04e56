package auth

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure NullProvider implements the CredentialsProvider interface.
var _ driven.CredentialsProvider = (*NullProvider)(nil)

// NullProvider is for anonymous repositories.
// Queries work without credentials; writes fail with domain.ErrAuthRequired.
type NullProvider struct{}

// NewNullProvider creates a provider for anonymous repositories.
func NewNullProvider() *NullProvider {
	return &NullProvider{}
}

// Credentials returns nil since the repository is anonymous.
func (p *NullProvider) Credentials(_ context.Context) (*domain.Credentials, error) {
	return nil, nil
}

// CredentialsID returns an empty string.
func (p *NullProvider) CredentialsID() string {
	return ""
}

// IsAuthenticated always returns false.
func (p *NullProvider) IsAuthenticated(_ context.Context) bool {
	return false
}
