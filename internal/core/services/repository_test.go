package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

func TestRepositoryService_Add_Defaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	repo, err := f.repoService.Add(ctx, domain.TaskRepository{URL: "http://www.github.org/octocat/hello/"}, nil)

	require.NoError(t, err)
	assert.Equal(t, testRepoURL, repo.URL)
	assert.Equal(t, domain.ConnectorKindGitHub, repo.Kind)
	assert.Equal(t, testRepoURL, repo.Label)
	assert.Equal(t, domain.APIVersionV2, repo.APIVersion)
	assert.Empty(t, repo.CredentialsID)
}

func TestRepositoryService_Add_StoresCredentials(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	repo := f.addRepo(ctx)

	require.NotEmpty(t, repo.CredentialsID)
	creds, err := f.credStore.Get(ctx, repo.CredentialsID)
	require.NoError(t, err)
	assert.Equal(t, "octocat", creds.Username)
	assert.Equal(t, "secret", creds.APIToken)
	assert.Len(t, repo.CredentialsID, 36)
}

func TestRepositoryService_Add_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addRepo(ctx)

	tests := []struct {
		name string
		repo domain.TaskRepository
		want error
	}{
		{"bad url", domain.TaskRepository{URL: "https://example.com/u/p"}, domain.ErrInvalidRepositoryURL},
		{"duplicate", domain.TaskRepository{URL: testRepoURL}, domain.ErrAlreadyExists},
		{"bad version", domain.TaskRepository{URL: "https://github.com/a/b", APIVersion: "v1"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.repoService.Add(ctx, tt.repo, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRepositoryService_SetDefaultAPIVersion(t *testing.T) {
	f := newFixture()
	f.repoService.SetDefaultAPIVersion(domain.APIVersionV3)
	f.repoService.SetDefaultAPIVersion("bogus")

	repo, err := f.repoService.Add(context.Background(), domain.TaskRepository{URL: testRepoURL}, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.APIVersionV3, repo.APIVersion)
}

func TestRepositoryService_Remove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	repo := f.addRepo(ctx)

	require.NoError(t, f.queries.Save(ctx, domain.Query{ID: "q1", RepositoryURL: testRepoURL}))
	require.NoError(t, f.tasks.Save(ctx, domain.Task{RepositoryURL: testRepoURL, TaskID: "1"}))

	require.NoError(t, f.repoService.Remove(ctx, testRepoURL))

	_, err := f.repoService.Get(ctx, testRepoURL)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.credStore.Get(ctx, repo.CredentialsID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.queries.Get(ctx, "q1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	tasks, err := f.tasks.List(ctx, testRepoURL)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	assert.ErrorIs(t, f.repoService.Remove(ctx, testRepoURL), domain.ErrNotFound)
}

func TestRepositoryService_AlternateURLs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addRepo(ctx)
	require.NoError(t, f.tasks.Save(ctx, domain.Task{RepositoryURL: testRepoURL, TaskID: "1"}))

	repo, err := f.repoService.Get(ctx, "http://www.github.org/octocat/hello")
	require.NoError(t, err)
	assert.Equal(t, testRepoURL, repo.URL)

	require.NoError(t, f.repoService.Remove(ctx, "http://github.com/octocat/hello"))

	_, err = f.repoStore.Get(ctx, testRepoURL)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	tasks, err := f.tasks.List(ctx, testRepoURL)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestRepositoryService_List(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addRepo(ctx)
	_, err := f.repoService.Add(ctx, domain.TaskRepository{URL: "https://github.com/alice/tools"}, nil)
	require.NoError(t, err)

	repos, err := f.repoService.List(ctx)

	require.NoError(t, err)
	assert.Len(t, repos, 2)
}

func TestRepositoryService_Validate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addRepo(ctx)

	require.NoError(t, f.repoService.Validate(ctx, testRepoURL))
	assert.Equal(t, []string{"search open", "validate"}, f.issues.calls)
	require.NotEmpty(t, f.issues.creds)
	assert.Equal(t, "octocat", f.issues.creds[0].Username)

	f.issues.validOK = false
	err := f.repoService.Validate(ctx, testRepoURL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Repository Test failed")

	assert.ErrorIs(t, f.repoService.Validate(ctx, "https://github.com/missing/repo"), domain.ErrNotFound)
}

func TestRepositoryService_NilDependencies(t *testing.T) {
	s := NewRepositoryService(nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	_, err := s.Add(ctx, domain.TaskRepository{URL: testRepoURL}, nil)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, s.Remove(ctx, testRepoURL), domain.ErrNotImplemented)
	assert.ErrorIs(t, s.Validate(ctx, testRepoURL), domain.ErrNotImplemented)
}
