package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

var searchStatus string

var searchCmd = &cobra.Command{
	Use:   "search [repository-url] [terms...]",
	Short: "Search the issues of a repository",
	Long: `Runs an unsaved query against a registered repository and refreshes
the local task list with the matching issues. Without terms every issue
with the selected status is listed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchStatus, "status", "s", domain.IssueStateOpen, "issue status: open, closed or all")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireQueryService(); err != nil {
		return err
	}

	query := domain.Query{
		RepositoryURL: args[0],
		Status:        searchStatus,
		QueryText:     strings.Join(args[1:], " "),
	}

	result, err := queryService.RunAdHoc(cmd.Context(), query, newProgressMonitor(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return renderQueryResult(cmd, result)
}
