// Package cli implements the ghtask command line interface with cobra.
// Commands talk to the core through the driving ports only; the services
// are injected with SetServices or built lazily by a Bootstrap function.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
)

// skipServices marks commands that run without bootstrapping services.
const skipServices = "ghtask/skip-services"

var (
	version = "dev"

	repositoryService driving.RepositoryService
	queryService      driving.QueryService
	taskService       driving.TaskService
	settingsService   driving.SettingsService

	bootstrap Bootstrap
	cleanup   func() error
	options   Options
)

// Options are the global flags handed to the Bootstrap function.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Memory keeps repositories, queries and tasks in memory only.
	Memory bool

	// Verbose enables debug logging.
	Verbose bool
}

// Services bundles the driving ports used by the commands.
type Services struct {
	Repository driving.RepositoryService
	Query      driving.QueryService
	Task       driving.TaskService
	Settings   driving.SettingsService
}

// Bootstrap builds the services for the parsed global flags. The returned
// cleanup function is called once the command finished.
type Bootstrap func(opts Options) (*Services, func() error, error)

var rootCmd = &cobra.Command{
	Use:   "ghtask",
	Short: "Work with GitHub issues as a task repository",
	Long: `ghtask registers GitHub projects as task repositories and keeps a local
task list of their issues in sync.

Issues are read and written through the legacy Issues API (v2 JSON) or the
REST API (v3). Saved queries refresh the local task list, and issue
references like #12 or user/project#12 can be resolved in any text.

Example:
  ghtask repo add https://github.com/octocat/hello --user octocat
  ghtask search https://github.com/octocat/hello crash
  ghtask task show https://github.com/octocat/hello/issues/12`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

// Execute runs the root command and releases bootstrapped services.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cleanup != nil {
		err = errors.Join(err, cleanup())
		cleanup = nil
	}
	return err
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	repositoryService = s.Repository
	queryService = s.Query
	taskService = s.Task
	settingsService = s.Settings
}

// SetBootstrap registers the function building services from global flags.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.SetOut(os.Stdout)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.ghtask)")
	flags.BoolVar(&options.Memory, "memory", false, "keep repositories and tasks in memory only")
	flags.BoolVarP(&options.Verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&jsonOutput, "json", false, "output as JSON")
	flags.BoolVar(&yamlOutput, "yaml", false, "output as YAML")
}

func initServices(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(); err != nil {
		return err
	}
	if bootstrap == nil || cmd.Annotations[skipServices] != "" {
		return nil
	}

	services, done, err := bootstrap(options)
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = done
	return nil
}
