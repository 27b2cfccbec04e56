package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ghtask/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// DatabaseFile is the name of the database inside the data directory.
const DatabaseFile = "tasks.db"

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.ghtask/data/tasks.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ghtask", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RepositoryStore returns a RepositoryStore interface backed by this store.
func (s *Store) RepositoryStore() driven.RepositoryStore {
	return &repositoryStore{store: s}
}

// CredentialsStore returns a CredentialsStore interface backed by this store.
func (s *Store) CredentialsStore() driven.CredentialsStore {
	return &credentialsStore{store: s}
}

// QueryStore returns a QueryStore interface backed by this store.
func (s *Store) QueryStore() driven.QueryStore {
	return &queryStore{store: s}
}

// TaskStore returns a TaskStore interface backed by this store.
func (s *Store) TaskStore() driven.TaskStore {
	return &taskStore{store: s}
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// nullString converts empty strings to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullTime converts zero times to NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

// timeOf returns the time held by t, or the zero time for NULL.
func timeOf(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// notFound maps sql.ErrNoRows onto domain.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("scanning %s: %w", what, err)
}

// ==================== Repository Store ====================

// repositoryStore implements driven.RepositoryStore.
type repositoryStore struct {
	store *Store
}

var _ driven.RepositoryStore = (*repositoryStore)(nil)

const repositoryColumns = "url, kind, label, api_version, credentials_id, created_at, updated_at"

// Save stores or updates a repository.
func (s *repositoryStore) Save(ctx context.Context, repo domain.TaskRepository) error {
	now := time.Now().UTC()
	if repo.CreatedAt.IsZero() {
		repo.CreatedAt = now
	}
	repo.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO repositories (`+repositoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			kind = excluded.kind,
			label = excluded.label,
			api_version = excluded.api_version,
			credentials_id = excluded.credentials_id,
			updated_at = excluded.updated_at
	`, repo.URL, repo.Kind, repo.Label, repo.APIVersion,
		nullString(repo.CredentialsID), repo.CreatedAt, repo.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving repository: %w", err)
	}
	return nil
}

// Get retrieves a repository by URL.
func (s *repositoryStore) Get(ctx context.Context, url string) (*domain.TaskRepository, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+repositoryColumns+" FROM repositories WHERE url = ?", url)
	return scanRepository(row)
}

// Delete removes a repository. Its queries and tasks are removed with it.
func (s *repositoryStore) Delete(ctx context.Context, url string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM repositories WHERE url = ?", url)
	if err != nil {
		return fmt.Errorf("deleting repository: %w", err)
	}
	return nil
}

// List returns all repositories ordered by URL.
func (s *repositoryStore) List(ctx context.Context) ([]domain.TaskRepository, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+repositoryColumns+" FROM repositories ORDER BY url")
	if err != nil {
		return nil, fmt.Errorf("querying repositories: %w", err)
	}
	defer rows.Close()

	var repos []domain.TaskRepository //nolint:prealloc // size unknown from query
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, err
		}
		repos = append(repos, *repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating repositories: %w", err)
	}
	return repos, nil
}

func scanRepository(row rowScanner) (*domain.TaskRepository, error) {
	var repo domain.TaskRepository
	var credentialsID sql.NullString
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&repo.URL, &repo.Kind, &repo.Label, &repo.APIVersion,
		&credentialsID, &createdAt, &updatedAt); err != nil {
		return nil, notFound(err, "repository")
	}
	repo.CredentialsID = credentialsID.String
	repo.CreatedAt = timeOf(createdAt)
	repo.UpdatedAt = timeOf(updatedAt)
	return &repo, nil
}

// ==================== Credentials Store ====================

type credentialsStore struct {
	store *Store
}

var _ driven.CredentialsStore = (*credentialsStore)(nil)

// Save stores or updates credentials.
func (s *credentialsStore) Save(ctx context.Context, creds domain.Credentials) error {
	if creds.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if creds.CreatedAt.IsZero() {
		creds.CreatedAt = now
	}
	creds.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO credentials (id, username, api_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			api_token = excluded.api_token,
			updated_at = excluded.updated_at
	`, creds.ID, creds.Username, creds.APIToken, creds.CreatedAt, creds.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// Get retrieves credentials by ID.
func (s *credentialsStore) Get(ctx context.Context, id string) (*domain.Credentials, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, username, api_token, created_at, updated_at
		FROM credentials WHERE id = ?
	`, id)

	var creds domain.Credentials
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&creds.ID, &creds.Username, &creds.APIToken, &createdAt, &updatedAt); err != nil {
		return nil, notFound(err, "credentials")
	}
	creds.CreatedAt = timeOf(createdAt)
	creds.UpdatedAt = timeOf(updatedAt)
	return &creds, nil
}

// Delete removes credentials by ID.
func (s *credentialsStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM credentials WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}

// ==================== Query Store ====================

type queryStore struct {
	store *Store
}

var _ driven.QueryStore = (*queryStore)(nil)

const queryColumns = "id, repository_url, summary, status, query_text, created_at"

// Save stores or updates a query.
func (s *queryStore) Save(ctx context.Context, query domain.Query) error {
	if query.CreatedAt.IsZero() {
		query.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO queries (`+queryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			repository_url = excluded.repository_url,
			summary = excluded.summary,
			status = excluded.status,
			query_text = excluded.query_text
	`, query.ID, query.RepositoryURL, query.Summary, query.Status, query.QueryText, query.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving query: %w", err)
	}
	return nil
}

// Get retrieves a query by ID.
func (s *queryStore) Get(ctx context.Context, id string) (*domain.Query, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+queryColumns+" FROM queries WHERE id = ?", id)
	return scanQuery(row)
}

// Delete removes a query.
func (s *queryStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM queries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting query: %w", err)
	}
	return nil
}

// List returns the queries of a repository, or all when repositoryURL is empty.
func (s *queryStore) List(ctx context.Context, repositoryURL string) ([]domain.Query, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+queryColumns+` FROM queries
		WHERE ? = '' OR repository_url = ?
		ORDER BY created_at, id
	`, repositoryURL, repositoryURL)
	if err != nil {
		return nil, fmt.Errorf("querying queries: %w", err)
	}
	defer rows.Close()

	var queries []domain.Query //nolint:prealloc // size unknown from query
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, err
		}
		queries = append(queries, *q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating queries: %w", err)
	}
	return queries, nil
}

// DeleteByRepository removes every query of a repository.
func (s *queryStore) DeleteByRepository(ctx context.Context, repositoryURL string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM queries WHERE repository_url = ?", repositoryURL)
	if err != nil {
		return fmt.Errorf("deleting queries: %w", err)
	}
	return nil
}

func scanQuery(row rowScanner) (*domain.Query, error) {
	var q domain.Query
	var createdAt sql.NullTime
	if err := row.Scan(&q.ID, &q.RepositoryURL, &q.Summary, &q.Status, &q.QueryText, &createdAt); err != nil {
		return nil, notFound(err, "query")
	}
	q.CreatedAt = timeOf(createdAt)
	return &q, nil
}

// ==================== Task Store ====================

type taskStore struct {
	store *Store
}

var _ driven.TaskStore = (*taskStore)(nil)

const taskColumns = `repository_url, task_id, task_key, summary, status, url,
	created_at, modified_at, completed_at, synced_at`

// Save stores or updates a task.
func (s *taskStore) Save(ctx context.Context, task domain.Task) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(repository_url, task_id) DO UPDATE SET
			task_key = excluded.task_key,
			summary = excluded.summary,
			status = excluded.status,
			url = excluded.url,
			created_at = excluded.created_at,
			modified_at = excluded.modified_at,
			completed_at = excluded.completed_at,
			synced_at = excluded.synced_at
	`, task.RepositoryURL, task.TaskID, task.Key, task.Summary, task.Status, task.URL,
		nullTime(task.CreatedAt), nullTime(task.ModifiedAt),
		nullTime(task.CompletedAt), nullTime(task.SyncedAt))

	if err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	return nil
}

// Get retrieves a task.
func (s *taskStore) Get(ctx context.Context, repositoryURL, taskID string) (*domain.Task, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE repository_url = ? AND task_id = ?",
		repositoryURL, taskID)
	return scanTask(row)
}

// List returns the tasks of a repository, numeric IDs first in numeric order.
func (s *taskStore) List(ctx context.Context, repositoryURL string) ([]domain.Task, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE repository_url = ?
		ORDER BY task_id GLOB '*[^0-9]*', CAST(task_id AS INTEGER), task_id
	`, repositoryURL)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task //nolint:prealloc // size unknown from query
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes one task.
func (s *taskStore) Delete(ctx context.Context, repositoryURL, taskID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE repository_url = ? AND task_id = ?", repositoryURL, taskID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// DeleteByRepository removes every task of a repository.
func (s *taskStore) DeleteByRepository(ctx context.Context, repositoryURL string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM tasks WHERE repository_url = ?", repositoryURL)
	if err != nil {
		return fmt.Errorf("deleting tasks: %w", err)
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var createdAt, modifiedAt, completedAt, syncedAt sql.NullTime
	if err := row.Scan(&task.RepositoryURL, &task.TaskID, &task.Key, &task.Summary,
		&task.Status, &task.URL, &createdAt, &modifiedAt, &completedAt, &syncedAt); err != nil {
		return nil, notFound(err, "task")
	}
	task.CreatedAt = timeOf(createdAt)
	task.ModifiedAt = timeOf(modifiedAt)
	task.CompletedAt = timeOf(completedAt)
	task.SyncedAt = timeOf(syncedAt)
	return &task, nil
}
