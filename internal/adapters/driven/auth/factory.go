package auth

import (
	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// Ensure Factory implements the CredentialsProviderFactory interface.
var _ driven.CredentialsProviderFactory = (*Factory)(nil)

// Factory creates CredentialsProviders for task repositories.
type Factory struct {
	credentialsStore driven.CredentialsStore
}

// NewFactory creates a credentials provider factory.
func NewFactory(credentialsStore driven.CredentialsStore) *Factory {
	return &Factory{credentialsStore: credentialsStore}
}

// ForRepository returns a StoredProvider for repositories with credentials
// and a NullProvider otherwise.
func (f *Factory) ForRepository(repo domain.TaskRepository) driven.CredentialsProvider {
	if repo.CredentialsID == "" || f.credentialsStore == nil {
		return NewNullProvider()
	}
	return NewStoredProvider(repo.CredentialsID, f.credentialsStore)
}
