package driven

import (
	"context"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// CredentialsStore persists repository credentials.
// Credentials are referenced by a repository's CredentialsID.
type CredentialsStore interface {
	// Save stores credentials. Creates if new, updates if exists.
	Save(ctx context.Context, creds domain.Credentials) error

	// Get retrieves credentials by ID.
	Get(ctx context.Context, id string) (*domain.Credentials, error)

	// Delete removes credentials by ID.
	Delete(ctx context.Context, id string) error
}
