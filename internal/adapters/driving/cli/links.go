package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	linksIndex  int
	linksOffset int
)

var linksCmd = &cobra.Command{
	Use:   "links [repository-url] [text]",
	Short: "Find issue references in text",
	Long: `Finds references like #12, user#12 and user/project#12 in text.

A bare #12 refers to the given repository. Qualified references resolve to
a registered repository when one matches, otherwise to the issue on
github.com. With --index only the reference covering that position is
reported.`,
	Args: cobra.ExactArgs(2),
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().IntVar(&linksIndex, "index", -1, "only report the reference covering this position (-1 = all)")
	linksCmd.Flags().IntVar(&linksOffset, "offset", 0, "shift reported regions by this amount")
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	if err := requireTaskService(); err != nil {
		return err
	}

	repoURL, text := args[0], args[1]
	links, err := taskService.Links(cmd.Context(), repoURL, text, linksIndex, linksOffset)
	if err != nil {
		return fmt.Errorf("failed to find links: %w", err)
	}

	return render(cmd, links, func() {
		if len(links) == 0 {
			cmd.Println("No references found.")
			return
		}
		for _, l := range links {
			target := l.WebURL
			if target == "" {
				target = taskService.TaskURL(l.RepositoryURL, l.TaskID)
			}
			start := l.Offset - linksOffset
			cmd.Printf("%d:%d\t%s\t%s\n", l.Offset, l.Length, text[start:start+l.Length], target)
		}
	})
}
