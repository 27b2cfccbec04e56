package auth

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure StoredProvider implements the CredentialsProvider interface.
var _ driven.CredentialsProvider = (*StoredProvider)(nil)

// StoredProvider reads a login and API token from the credentials store.
// Credentials are looked up on every call so edits take effect immediately.
type StoredProvider struct {
	credentialsID    string
	credentialsStore driven.CredentialsStore
}

// NewStoredProvider creates a provider for the given credentials ID.
func NewStoredProvider(credentialsID string, credentialsStore driven.CredentialsStore) *StoredProvider {
	return &StoredProvider{
		credentialsID:    credentialsID,
		credentialsStore: credentialsStore,
	}
}

// Credentials returns the stored credentials.
func (p *StoredProvider) Credentials(ctx context.Context) (*domain.Credentials, error) {
	creds, err := p.credentialsStore.Get(ctx, p.credentialsID)
	if err != nil {
		return nil, fmt.Errorf("get credentials %s: %w", p.credentialsID, err)
	}
	return creds, nil
}

// CredentialsID returns the credentials ID.
func (p *StoredProvider) CredentialsID() string {
	return p.credentialsID
}

// IsAuthenticated returns true if the stored credentials carry a token.
func (p *StoredProvider) IsAuthenticated(ctx context.Context) bool {
	creds, err := p.credentialsStore.Get(ctx, p.credentialsID)
	if err != nil {
		return false
	}
	return creds.HasToken()
}
