package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

const testRepoURL = "https://github.com/octocat/hello"

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create a temporary directory for the test database
	tempDir, err := os.MkdirTemp("", "ghtask-test-*")
	require.NoError(t, err)

	// Create store in temp directory
	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Return cleanup function
	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// createTestRepository creates a repository to satisfy foreign key constraints.
func createTestRepository(t *testing.T, store *Store, url string) {
	t.Helper()
	err := store.RepositoryStore().Save(context.Background(), domain.TaskRepository{
		URL:        url,
		Kind:       domain.ConnectorKindGitHub,
		APIVersion: domain.APIVersionV2,
	})
	require.NoError(t, err)
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, DatabaseFile, filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()

	store1, err := NewStore(dir)
	require.NoError(t, err)
	createTestRepository(t, store1, testRepoURL)
	require.NoError(t, store1.Close())

	store2, err := NewStore(dir)
	require.NoError(t, err)
	defer store2.Close()

	version, err := store2.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	repo, err := store2.RepositoryStore().Get(context.Background(), testRepoURL)
	require.NoError(t, err)
	assert.Equal(t, domain.APIVersionV2, repo.APIVersion)
}

func TestRepositoryStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	repos := store.RepositoryStore()

	require.NoError(t, store.CredentialsStore().Save(ctx, domain.Credentials{ID: "c1", Username: "octocat"}))
	require.NoError(t, repos.Save(ctx, domain.TaskRepository{
		URL:           testRepoURL,
		Kind:          domain.ConnectorKindGitHub,
		Label:         "Hello",
		APIVersion:    domain.APIVersionV2,
		CredentialsID: "c1",
	}))
	createTestRepository(t, store, "https://github.com/a/b")

	got, err := repos.Get(ctx, testRepoURL)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Label)
	assert.Equal(t, "c1", got.CredentialsID)
	assert.False(t, got.CreatedAt.IsZero())
	created := got.CreatedAt

	got.Label = "Renamed"
	require.NoError(t, repos.Save(ctx, *got))
	got, err = repos.Get(ctx, testRepoURL)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Label)
	assert.True(t, created.Equal(got.CreatedAt))

	list, err := repos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "https://github.com/a/b", list[0].URL)
	assert.Empty(t, list[0].CredentialsID)

	require.NoError(t, repos.Delete(ctx, testRepoURL))
	_, err = repos.Get(ctx, testRepoURL)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentialsStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	creds := store.CredentialsStore()

	assert.ErrorIs(t, creds.Save(ctx, domain.Credentials{}), domain.ErrInvalidInput)

	require.NoError(t, creds.Save(ctx, domain.Credentials{ID: "c1", Username: "octocat", APIToken: "secret"}))

	got, err := creds.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "octocat", got.Username)
	assert.Equal(t, "secret", got.APIToken)

	got.APIToken = "rotated"
	require.NoError(t, creds.Save(ctx, *got))
	got, err = creds.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.APIToken)

	require.NoError(t, creds.Delete(ctx, "c1"))
	_, err = creds.Get(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueryStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.QueryStore()
	createTestRepository(t, store, testRepoURL)
	createTestRepository(t, store, "https://github.com/a/b")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, queries.Save(ctx, domain.Query{
		ID: "q2", RepositoryURL: testRepoURL, Status: "closed", CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, queries.Save(ctx, domain.Query{
		ID: "q1", RepositoryURL: testRepoURL, Summary: "open:crash", Status: "open", QueryText: "crash", CreatedAt: base,
	}))
	require.NoError(t, queries.Save(ctx, domain.Query{
		ID: "q3", RepositoryURL: "https://github.com/a/b", Status: "all", CreatedAt: base,
	}))

	got, err := queries.Get(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "crash", got.QueryText)
	assert.Equal(t, "open:crash", got.Summary)
	assert.True(t, base.Equal(got.CreatedAt))

	list, err := queries.List(ctx, testRepoURL)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "q1", list[0].ID)

	all, err := queries.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, queries.DeleteByRepository(ctx, testRepoURL))
	all, err = queries.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, queries.Delete(ctx, "q3"))
	_, err = queries.Get(ctx, "q3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueryStore_RequiresRepository(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.QueryStore().Save(context.Background(), domain.Query{
		ID: "q1", RepositoryURL: "https://github.com/missing/repo", Status: "open",
	})
	assert.Error(t, err)
}

func TestTaskStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	tasks := store.TaskStore()
	createTestRepository(t, store, testRepoURL)

	modified := time.Date(2010, 2, 5, 5, 9, 37, 0, time.UTC)
	for _, id := range []string{"10", "2", "1"} {
		require.NoError(t, tasks.Save(ctx, domain.Task{
			RepositoryURL: testRepoURL,
			TaskID:        id,
			Key:           id,
			Summary:       "issue " + id,
			Status:        "open",
			ModifiedAt:    modified,
		}))
	}

	got, err := tasks.Get(ctx, testRepoURL, "2")
	require.NoError(t, err)
	assert.Equal(t, "issue 2", got.Summary)
	assert.True(t, modified.Equal(got.ModifiedAt))
	assert.True(t, got.CompletedAt.IsZero())
	assert.False(t, got.IsCompleted())

	got.CompletedAt = modified.Add(time.Hour)
	got.Status = "closed"
	require.NoError(t, tasks.Save(ctx, *got))
	got, err = tasks.Get(ctx, testRepoURL, "2")
	require.NoError(t, err)
	assert.True(t, got.IsCompleted())
	assert.Equal(t, "closed", got.Status)

	list, err := tasks.List(ctx, testRepoURL)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "10"}, []string{list[0].TaskID, list[1].TaskID, list[2].TaskID})

	require.NoError(t, tasks.Delete(ctx, testRepoURL, "1"))
	_, err = tasks.Get(ctx, testRepoURL, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, tasks.DeleteByRepository(ctx, testRepoURL))
	list, err = tasks.List(ctx, testRepoURL)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRepositoryDelete_Cascades(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	createTestRepository(t, store, testRepoURL)

	require.NoError(t, store.QueryStore().Save(ctx, domain.Query{ID: "q1", RepositoryURL: testRepoURL, Status: "open"}))
	require.NoError(t, store.TaskStore().Save(ctx, domain.Task{RepositoryURL: testRepoURL, TaskID: "1"}))

	require.NoError(t, store.RepositoryStore().Delete(ctx, testRepoURL))

	_, err := store.QueryStore().Get(ctx, "q1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.TaskStore().Get(ctx, testRepoURL, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
