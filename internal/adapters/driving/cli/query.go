package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driving"
)

var (
	queryStatus  string
	querySummary string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Manage saved queries",
	Long:  `Save, list, run and remove issue queries of registered repositories.`,
}

var queryAddCmd = &cobra.Command{
	Use:   "add [repository-url] [terms...]",
	Short: "Save a query",
	Long: `Save a query over the issues of a repository.

Without terms the query lists every issue with the selected status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQueryAdd,
}

var queryListCmd = &cobra.Command{
	Use:   "list [repository-url]",
	Short: "List saved queries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQueryList,
}

var queryRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a saved query",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryRemove,
}

var queryRunCmd = &cobra.Command{
	Use:   "run [id]",
	Short: "Run a saved query and refresh the task list",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryRun,
}

func init() {
	queryAddCmd.Flags().StringVarP(&queryStatus, "status", "s", domain.IssueStateOpen, "issue status: open, closed or all")
	queryAddCmd.Flags().StringVar(&querySummary, "summary", "", "display title (default status:terms)")

	queryCmd.AddCommand(queryAddCmd)
	queryCmd.AddCommand(queryListCmd)
	queryCmd.AddCommand(queryRemoveCmd)
	queryCmd.AddCommand(queryRunCmd)
	rootCmd.AddCommand(queryCmd)
}

func requireQueryService() error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	return nil
}

func runQueryAdd(cmd *cobra.Command, args []string) error {
	if err := requireQueryService(); err != nil {
		return err
	}

	query, err := queryService.Add(cmd.Context(), domain.Query{
		RepositoryURL: args[0],
		Summary:       querySummary,
		Status:        queryStatus,
		QueryText:     strings.Join(args[1:], " "),
	})
	if err != nil {
		return fmt.Errorf("failed to add query: %w", err)
	}

	return render(cmd, query, func() {
		cmd.Printf("Saved query %s (%s)\n", query.ID, query.Summary)
	})
}

func runQueryList(cmd *cobra.Command, args []string) error {
	if err := requireQueryService(); err != nil {
		return err
	}

	repoURL := ""
	if len(args) == 1 {
		repoURL = args[0]
	}

	queries, err := queryService.List(cmd.Context(), repoURL)
	if err != nil {
		return fmt.Errorf("failed to list queries: %w", err)
	}

	return render(cmd, queries, func() {
		if len(queries) == 0 {
			cmd.Println("No saved queries.")
			return
		}
		for i := range queries {
			cmd.Printf("%s\t%s\t%s\n", queries[i].ID, queries[i].Summary, queries[i].RepositoryURL)
		}
	})
}

func runQueryRemove(cmd *cobra.Command, args []string) error {
	if err := requireQueryService(); err != nil {
		return err
	}

	if err := queryService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove query: %w", err)
	}
	cmd.Printf("Removed query %s\n", args[0])
	return nil
}

func runQueryRun(cmd *cobra.Command, args []string) error {
	if err := requireQueryService(); err != nil {
		return err
	}

	result, err := queryService.Run(cmd.Context(), args[0], newProgressMonitor(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return renderQueryResult(cmd, result)
}

func renderQueryResult(cmd *cobra.Command, result *driving.QueryResult) error {
	return render(cmd, result, func() {
		if len(result.Tasks) == 0 {
			cmd.Println("No issues found.")
			return
		}
		for i := range result.Tasks {
			task := &result.Tasks[i]
			cmd.Printf("#%s\t[%s]\t%s\n", task.TaskID, task.Status, task.Summary)
		}
		cmd.Println()
		cmd.Printf("%d issues, %d new, %d updated\n", len(result.Tasks), result.Added, result.Updated)
	})
}
