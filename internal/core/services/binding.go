package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// binding is a registered repository together with its credentials.
type binding struct {
	repo  domain.TaskRepository
	creds *domain.Credentials
}

// repositoryBinder resolves repository URLs into bindings.
type repositoryBinder struct {
	repos     driven.RepositoryStore
	providers driven.CredentialsProviderFactory
	connector driven.RepositoryConnector
}

// canonical returns the stored form of a repository URL. URLs the
// connector rejects are returned unchanged.
func (b repositoryBinder) canonical(url string) string {
	if b.connector == nil || url == "" {
		return url
	}
	normalized, err := b.connector.NormalizeRepositoryURL(url)
	if err != nil {
		return url
	}
	return normalized
}

// get looks up a registered repository by any accepted form of its URL.
func (b repositoryBinder) get(ctx context.Context, url string) (*domain.TaskRepository, error) {
	repo, err := b.repos.Get(ctx, b.canonical(url))
	if err != nil {
		return nil, fmt.Errorf("get repository %s: %w", url, err)
	}
	return repo, nil
}

func (b repositoryBinder) bind(ctx context.Context, url string) (*binding, error) {
	if b.repos == nil {
		return nil, domain.ErrNotImplemented
	}
	repo, err := b.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var creds *domain.Credentials
	if b.providers != nil {
		creds, err = b.providers.ForRepository(*repo).Credentials(ctx)
		if err != nil {
			return nil, err
		}
	}
	return &binding{repo: *repo, creds: creds}, nil
}

// lookup returns a RepositoryLookup over every registered repository.
func (b repositoryBinder) lookup(ctx context.Context) (driven.RepositoryLookup, error) {
	repos, err := b.repos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	byURL := make(map[string]domain.TaskRepository, len(repos))
	for _, r := range repos {
		byURL[r.URL] = r
	}
	return func(url string) *domain.TaskRepository {
		r, ok := byURL[url]
		if !ok {
			return nil
		}
		return &r
	}, nil
}

// taskSync writes task data into the local task list.
type taskSync struct {
	tasks     driven.TaskStore
	connector driven.RepositoryConnector
	now       func() time.Time
}

// apply updates the local task for data. It reports whether the task was
// added or changed; unchanged tasks only get a new SyncedAt.
func (s taskSync) apply(ctx context.Context, repo domain.TaskRepository, data *domain.TaskData) (
	task domain.Task, added, updated bool, err error,
) {
	existing, err := s.tasks.Get(ctx, repo.URL, data.TaskID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		added = true
	case err != nil:
		return domain.Task{}, false, false, fmt.Errorf("get task %s: %w", data.TaskID, err)
	default:
		task = *existing
	}

	if added || s.connector.HasTaskChanged(repo, &task, data) {
		s.connector.UpdateTaskFromTaskData(repo, &task, data)
		updated = !added
	}
	task.SyncedAt = s.now().UTC()

	if err := s.tasks.Save(ctx, task); err != nil {
		return domain.Task{}, false, false, fmt.Errorf("save task %s: %w", data.TaskID, err)
	}
	return task, added, updated, nil
}
