package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
	"github.com/custodia-labs/ghtask/internal/logger"
)

// Ensure RepositoryService implements the interface.
var _ driving.RepositoryService = (*RepositoryService)(nil)

// RepositoryService manages task repository registrations.
type RepositoryService struct {
	repoStore  driven.RepositoryStore
	credsStore driven.CredentialsStore
	queryStore driven.QueryStore
	taskStore  driven.TaskStore
	connector  driven.RepositoryConnector
	providers  driven.CredentialsProviderFactory
	apiVersion string
}

// NewRepositoryService creates a new repository service.
func NewRepositoryService(
	repoStore driven.RepositoryStore,
	credsStore driven.CredentialsStore,
	queryStore driven.QueryStore,
	taskStore driven.TaskStore,
	connector driven.RepositoryConnector,
	providers driven.CredentialsProviderFactory,
) *RepositoryService {
	return &RepositoryService{
		repoStore:  repoStore,
		credsStore: credsStore,
		queryStore: queryStore,
		taskStore:  taskStore,
		connector:  connector,
		providers:  providers,
		apiVersion: domain.DefaultAPIVersion,
	}
}

// SetDefaultAPIVersion sets the version given to repositories added without one.
func (s *RepositoryService) SetDefaultAPIVersion(version string) {
	if domain.IsValidAPIVersion(version) {
		s.apiVersion = version
	}
}

// Add registers a repository. The URL is normalised; kind, label and API
// version get defaults. Non-empty creds are stored under a new ID.
func (s *RepositoryService) Add(
	ctx context.Context, repo domain.TaskRepository, creds *domain.Credentials,
) (*domain.TaskRepository, error) {
	if s.repoStore == nil || s.connector == nil {
		return nil, domain.ErrNotImplemented
	}

	url, err := s.connector.NormalizeRepositoryURL(repo.URL)
	if err != nil {
		return nil, err
	}
	repo.URL = url

	if existing, err := s.repoStore.Get(ctx, repo.URL); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: repository %s", domain.ErrAlreadyExists, repo.URL)
	}

	if repo.Kind == "" {
		repo.Kind = s.connector.Kind()
	}
	if repo.APIVersion == "" {
		repo.APIVersion = s.apiVersion
	}
	if !domain.IsValidAPIVersion(repo.APIVersion) {
		return nil, fmt.Errorf("%w: api version %q", domain.ErrInvalidInput, repo.APIVersion)
	}
	if repo.Label == "" {
		repo.Label = repo.URL
	}

	if !creds.IsEmpty() {
		if s.credsStore == nil {
			return nil, domain.ErrNotImplemented
		}
		stored := *creds
		now := time.Now().UTC()
		stored.ID = uuid.New().String()
		stored.CreatedAt = now
		stored.UpdatedAt = now
		if err := s.credsStore.Save(ctx, stored); err != nil {
			return nil, fmt.Errorf("save credentials: %w", err)
		}
		repo.CredentialsID = stored.ID
	}

	if err := s.repoStore.Save(ctx, repo); err != nil {
		return nil, fmt.Errorf("save repository: %w", err)
	}

	logger.Info("Added repository %s (%s)", repo.URL, repo.APIVersion)
	return s.repoStore.Get(ctx, repo.URL)
}

// Get retrieves a repository by URL.
func (s *RepositoryService) Get(ctx context.Context, url string) (*domain.TaskRepository, error) {
	if s.repoStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.repoStore.Get(ctx, s.binder().canonical(url))
}

// List returns all registered repositories.
func (s *RepositoryService) List(ctx context.Context) ([]domain.TaskRepository, error) {
	if s.repoStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.repoStore.List(ctx)
}

// Remove deletes a repository with its tasks, queries and credentials.
func (s *RepositoryService) Remove(ctx context.Context, url string) error {
	if s.repoStore == nil {
		return domain.ErrNotImplemented
	}

	repo, err := s.repoStore.Get(ctx, s.binder().canonical(url))
	if err != nil {
		return err
	}
	url = repo.URL

	if s.taskStore != nil {
		if err := s.taskStore.DeleteByRepository(ctx, url); err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
	}
	if s.queryStore != nil {
		if err := s.queryStore.DeleteByRepository(ctx, url); err != nil {
			return fmt.Errorf("delete queries: %w", err)
		}
	}
	if err := s.repoStore.Delete(ctx, url); err != nil {
		return fmt.Errorf("delete repository: %w", err)
	}
	if repo.CredentialsID != "" && s.credsStore != nil {
		if err := s.credsStore.Delete(ctx, repo.CredentialsID); err != nil {
			logger.Warn("Failed to delete credentials %s: %v", repo.CredentialsID, err)
		}
	}
	return nil
}

// Validate checks a registered repository against the remote API.
func (s *RepositoryService) Validate(ctx context.Context, url string) error {
	if s.connector == nil {
		return domain.ErrNotImplemented
	}
	b, err := s.binder().bind(ctx, url)
	if err != nil {
		return err
	}
	return s.connector.ValidateRepository(ctx, b.repo, b.creds)
}

func (s *RepositoryService) binder() repositoryBinder {
	return repositoryBinder{repos: s.repoStore, providers: s.providers, connector: s.connector}
}
