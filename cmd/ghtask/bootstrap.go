package main

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/ghtask/internal/adapters/driven/auth"
	"github.com/custodia-labs/ghtask/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghtask/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghtask/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ghtask/internal/adapters/driving/cli"
	"github.com/custodia-labs/ghtask/internal/connectors/github"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
	"github.com/custodia-labs/ghtask/internal/core/services"
	"github.com/custodia-labs/ghtask/internal/logger"
)

// stores groups the driven stores the services are built on.
type stores struct {
	repositories driven.RepositoryStore
	credentials  driven.CredentialsStore
	queries      driven.QueryStore
	tasks        driven.TaskStore
	close        func() error
}

// bootstrap wires configuration, storage, the GitHub connector and the
// core services for one CLI invocation.
func bootstrap(opts cli.Options) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settings := configStore.Settings()
	logger.SetVerbose(opts.Verbose || settings.Log.Verbose)
	logger.Debug("config: %s", configStore.Path())

	st, err := openStores(opts, settings.Storage.DataDir)
	if err != nil {
		return nil, nil, err
	}

	providers := auth.NewFactory(st.credentials)
	connector := github.New(github.NewServiceFactory(settings.GitHub))

	repoService := services.NewRepositoryService(
		st.repositories, st.credentials, st.queries, st.tasks, connector, providers)
	repoService.SetDefaultAPIVersion(settings.GitHub.APIVersion)

	return &cli.Services{
		Repository: repoService,
		Query:      services.NewQueryService(st.queries, st.repositories, st.tasks, connector, providers),
		Task:       services.NewTaskService(st.repositories, st.tasks, connector, providers),
		Settings:   services.NewSettingsService(configStore),
	}, st.close, nil
}

// openStores opens the sqlite store, or memory stores with --memory.
// Without a configured data directory, a custom config directory keeps
// its database under <config-dir>/data.
func openStores(opts cli.Options, dataDir string) (*stores, error) {
	if opts.Memory {
		logger.Debug("storage: memory")
		return &stores{
			repositories: memory.NewRepositoryStore(),
			credentials:  memory.NewCredentialsStore(),
			queries:      memory.NewQueryStore(),
			tasks:        memory.NewTaskStore(),
			close:        func() error { return nil },
		}, nil
	}

	if dataDir == "" && opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening task database: %w", err)
	}
	logger.Debug("storage: sqlite %s", store.Path())

	return &stores{
		repositories: store.RepositoryStore(),
		credentials:  store.CredentialsStore(),
		queries:      store.QueryStore(),
		tasks:        store.TaskStore(),
		close:        store.Close,
	}, nil
}
