package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

func TestRepoCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range repoCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"add", "list", "remove", "validate"}, names)
}

func TestRepoAddCmd_RequiresURL(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("repo", "add")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestRepoAddCmd_ErrorsWithoutServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	repositoryService = nil

	_, err := execute("repo", "add", testRepoURL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRepoAddCmd_Anonymous(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("repo", "add", testRepoURL, "--label", "Hello", "--api-version", "v3")

	require.NoError(t, err)
	require.NotNil(t, ts.repos.added)
	assert.Nil(t, ts.repos.addedWith)
	assert.Equal(t, "Hello", ts.repos.added.Label)
	assert.Equal(t, "v3", ts.repos.added.APIVersion)
	assert.Contains(t, out, "Added repository "+testRepoURL+" (v3)")
	assert.Contains(t, out, "read-only")
}

func TestRepoAddCmd_WithToken(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("repo", "add", testRepoURL, "--user", "octocat", "--token", "secret")

	require.NoError(t, err)
	require.NotNil(t, ts.repos.addedWith)
	assert.Equal(t, "octocat", ts.repos.addedWith.Username)
	assert.Equal(t, "secret", ts.repos.addedWith.APIToken)
	assert.NotContains(t, out, "read-only")
}

func TestRepoAddCmd_PromptsForToken(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	rootCmd.SetIn(strings.NewReader("prompted-token\n"))

	out, err := execute("repo", "add", testRepoURL, "--user", "octocat")

	require.NoError(t, err)
	assert.Contains(t, out, "GitHub API token: ")
	require.NotNil(t, ts.repos.addedWith)
	assert.Equal(t, "prompted-token", ts.repos.addedWith.APIToken)
}

func TestRepoAddCmd_ServiceError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.repos.err = domain.ErrAlreadyExists

	_, err := execute("repo", "add", testRepoURL)

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepoListCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("repo", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No repositories registered.")
}

func TestRepoListCmd_Text(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.repos.repos = []domain.TaskRepository{
		{URL: testRepoURL, Label: "Hello", APIVersion: "v2", CredentialsID: "c1"},
		{URL: "https://github.com/bob/lib", APIVersion: "v3"},
	}

	out, err := execute("repo", "list")

	require.NoError(t, err)
	assert.Contains(t, out, testRepoURL+"\tHello\tv2\tread-write")
	assert.Contains(t, out, "https://github.com/bob/lib\thttps://github.com/bob/lib\tv3\tanonymous")
}

func TestRepoListCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.repos.repos = []domain.TaskRepository{{URL: testRepoURL, APIVersion: "v2"}}

	out, err := execute("repo", "list", "--json")
	require.NoError(t, err)

	var repos []domain.TaskRepository
	require.NoError(t, json.Unmarshal([]byte(out), &repos))
	require.Len(t, repos, 1)
	assert.Equal(t, testRepoURL, repos[0].URL)
}

func TestRepoListCmd_YAML(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.repos.repos = []domain.TaskRepository{{URL: testRepoURL, APIVersion: "v2"}}

	out, err := execute("repo", "list", "--yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "url: "+testRepoURL)
}

func TestRepoRemoveCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("repo", "remove", testRepoURL)

	require.NoError(t, err)
	assert.Equal(t, testRepoURL, ts.repos.removed)
	assert.Contains(t, out, "Removed repository")
}

func TestRepoValidateCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("repo", "validate", testRepoURL)

	require.NoError(t, err)
	assert.Equal(t, testRepoURL, ts.repos.validated)
	assert.Contains(t, out, "is valid")
}

func TestRepoValidateCmd_Failure(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.repos.err = errBoom

	_, err := execute("repo", "validate", testRepoURL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
