package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

var (
	repoLabel      string
	repoAPIVersion string
	repoUser       string
	repoToken      string
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage task repositories",
	Long:  `Register, list, validate and remove GitHub projects used as task repositories.`,
}

var repoAddCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Register a GitHub project",
	Long: `Register a GitHub project as a task repository.

The URL is normalised to https://github.com/user/project. Without --user the
repository is anonymous and read-only. With --user and no --token, the API
token is prompted for.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepoAdd,
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered repositories",
	Args:  cobra.NoArgs,
	RunE:  runRepoList,
}

var repoRemoveCmd = &cobra.Command{
	Use:   "remove [url]",
	Short: "Remove a repository with its queries and tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoRemove,
}

var repoValidateCmd = &cobra.Command{
	Use:   "validate [url]",
	Short: "Check a repository against the GitHub API",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoValidate,
}

func init() {
	repoAddCmd.Flags().StringVar(&repoLabel, "label", "", "display name (default the URL)")
	repoAddCmd.Flags().StringVar(&repoAPIVersion, "api-version", "", "API version: v2 or v3 (default from config)")
	repoAddCmd.Flags().StringVarP(&repoUser, "user", "u", "", "GitHub login for write access")
	repoAddCmd.Flags().StringVar(&repoToken, "token", "", "API token (prompted when --user is set)")

	repoCmd.AddCommand(repoAddCmd)
	repoCmd.AddCommand(repoListCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	repoCmd.AddCommand(repoValidateCmd)
	rootCmd.AddCommand(repoCmd)
}

func requireRepositoryService() error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}
	return nil
}

func runRepoAdd(cmd *cobra.Command, args []string) error {
	if err := requireRepositoryService(); err != nil {
		return err
	}

	var creds *domain.Credentials
	if repoUser != "" {
		token := repoToken
		if token == "" {
			var err error
			token, err = readSecret(cmd, "GitHub API token: ")
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
		}
		creds = &domain.Credentials{Username: repoUser, APIToken: token}
	}

	repo, err := repositoryService.Add(cmd.Context(), domain.TaskRepository{
		URL:        args[0],
		Label:      repoLabel,
		APIVersion: repoAPIVersion,
	}, creds)
	if err != nil {
		return fmt.Errorf("failed to add repository: %w", err)
	}

	return render(cmd, repo, func() {
		cmd.Printf("Added repository %s (%s)\n", repo.URL, repo.APIVersion)
		if repo.CredentialsID == "" {
			cmd.Println("No credentials stored: the repository is read-only.")
		}
	})
}

func runRepoList(cmd *cobra.Command, _ []string) error {
	if err := requireRepositoryService(); err != nil {
		return err
	}

	repos, err := repositoryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}

	return render(cmd, repos, func() {
		if len(repos) == 0 {
			cmd.Println("No repositories registered.")
			return
		}
		for i := range repos {
			access := "read-write"
			if repos[i].CredentialsID == "" {
				access = "anonymous"
			}
			cmd.Printf("%s\t%s\t%s\t%s\n", repos[i].URL, repos[i].DisplayName(), repos[i].APIVersion, access)
		}
	})
}

func runRepoRemove(cmd *cobra.Command, args []string) error {
	if err := requireRepositoryService(); err != nil {
		return err
	}

	if err := repositoryService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove repository: %w", err)
	}
	cmd.Printf("Removed repository %s\n", args[0])
	return nil
}

func runRepoValidate(cmd *cobra.Command, args []string) error {
	if err := requireRepositoryService(); err != nil {
		return err
	}

	if err := repositoryService.Validate(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	cmd.Printf("Repository %s is valid\n", args[0])
	return nil
}
