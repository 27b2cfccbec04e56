package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
)

func TestQueryCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range queryCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"add", "list", "remove", "run"}, names)
}

func TestQueryAddCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("query", "add", testRepoURL, "crash", "on", "start", "--status", "all")

	require.NoError(t, err)
	require.Len(t, ts.queries.queries, 1)
	q := ts.queries.queries[0]
	assert.Equal(t, testRepoURL, q.RepositoryURL)
	assert.Equal(t, "crash on start", q.QueryText)
	assert.Equal(t, "all", q.Status)
	assert.Contains(t, out, "Saved query q-1 (all:crash on start)")
}

func TestQueryAddCmd_DefaultStatusIsOpen(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("query", "add", testRepoURL)

	require.NoError(t, err)
	assert.Equal(t, domain.IssueStateOpen, ts.queries.queries[0].Status)
	assert.Empty(t, ts.queries.queries[0].QueryText)
}

func TestQueryAddCmd_ErrorsWithoutServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	queryService = nil

	_, err := execute("query", "add", testRepoURL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestQueryListCmd_FiltersByRepository(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.queries.queries = []domain.Query{
		{ID: "a", RepositoryURL: testRepoURL, Summary: "open:"},
		{ID: "b", RepositoryURL: "https://github.com/bob/lib", Summary: "all:x"},
	}

	out, err := execute("query", "list", testRepoURL)

	require.NoError(t, err)
	assert.Contains(t, out, "a\topen:")
	assert.NotContains(t, out, "all:x")
}

func TestQueryListCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("query", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No saved queries.")
}

func TestQueryRemoveCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("query", "remove", "q-9")

	require.NoError(t, err)
	assert.Equal(t, "q-9", ts.queries.removed)
}

func TestQueryRunCmd_PrintsTasksAndProgress(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.queries.result = &driving.QueryResult{
		Tasks: []domain.Task{
			{TaskID: "1", Status: "open", Summary: "Crash"},
			{TaskID: "2", Status: "closed", Summary: "Docs"},
		},
		Added:   1,
		Updated: 1,
	}

	out, err := execute("query", "run", "q-1")

	require.NoError(t, err)
	assert.Equal(t, "q-1", ts.queries.ran)
	assert.Contains(t, out, "Querying issues...")
	assert.Contains(t, out, "#1\t[open]\tCrash")
	assert.Contains(t, out, "#2\t[closed]\tDocs")
	assert.Contains(t, out, "2 issues, 1 new, 1 updated")
}

func TestQueryRunCmd_JSONHasNoProgress(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.queries.result = &driving.QueryResult{Tasks: []domain.Task{{TaskID: "1"}}}

	out, err := execute("query", "run", "q-1", "--json")
	require.NoError(t, err)

	var result driving.QueryResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Tasks, 1)
}

func TestQueryRunCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.queries.err = domain.ErrNotFound

	_, err := execute("query", "run", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchCmd_BuildsAdHocQuery(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", testRepoURL, "crash", "-s", "closed")

	require.NoError(t, err)
	assert.Equal(t, testRepoURL, ts.queries.lastRun.RepositoryURL)
	assert.Equal(t, "crash", ts.queries.lastRun.QueryText)
	assert.Equal(t, "closed", ts.queries.lastRun.Status)
	assert.Contains(t, out, "No issues found.")
}

func TestSearchCmd_RequiresRepository(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}
