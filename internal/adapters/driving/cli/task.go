package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

var (
	newSummary      string
	newDescription  string
	editSummary     string
	editDescription string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Read and edit tasks",
	Long: `Read and edit the issues of registered repositories.

A task is named either by its URL, e.g. https://github.com/user/project/issues/12,
or by the repository URL followed by the issue number.`,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-url | repository-url id]",
	Short: "Show a task",
	Args:  taskRefArgs(0),
	RunE:  runTaskShow,
}

var taskNewCmd = &cobra.Command{
	Use:   "new [repository-url]",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskNew,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task-url | repository-url id]",
	Short: "Change the summary or description of a task",
	Args:  taskRefArgs(0),
	RunE:  runTaskEdit,
}

var taskCloseCmd = &cobra.Command{
	Use:   "close [task-url | repository-url id]",
	Short: "Close a task",
	Args:  taskRefArgs(0),
	RunE:  runTaskTransition(domain.OperationClose),
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen [task-url | repository-url id]",
	Short: "Reopen a closed task",
	Args:  taskRefArgs(0),
	RunE:  runTaskTransition(domain.OperationReopen),
}

var taskListCmd = &cobra.Command{
	Use:   "list [repository-url]",
	Short: "List the local tasks of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskList,
}

var taskURLCmd = &cobra.Command{
	Use:   "url [repository-url] [id]",
	Short: "Print the web URL of a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskURL,
}

var taskResolveCmd = &cobra.Command{
	Use:   "resolve [task-url]",
	Short: "Split a task URL into repository URL and task ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskResolve,
}

var taskLabelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage task labels",
}

var taskLabelAddCmd = &cobra.Command{
	Use:   "add [label] [task-url | repository-url id]",
	Short: "Attach a label to a task",
	Args:  taskRefArgs(1),
	RunE:  runTaskLabel(true),
}

var taskLabelRemoveCmd = &cobra.Command{
	Use:   "remove [label] [task-url | repository-url id]",
	Short: "Detach a label from a task",
	Args:  taskRefArgs(1),
	RunE:  runTaskLabel(false),
}

func init() {
	taskNewCmd.Flags().StringVar(&newSummary, "summary", "", "task summary (required)")
	taskNewCmd.Flags().StringVar(&newDescription, "description", "", "task description")
	_ = taskNewCmd.MarkFlagRequired("summary")

	taskEditCmd.Flags().StringVar(&editSummary, "summary", "", "new summary")
	taskEditCmd.Flags().StringVar(&editDescription, "description", "", "new description")

	taskLabelCmd.AddCommand(taskLabelAddCmd)
	taskLabelCmd.AddCommand(taskLabelRemoveCmd)

	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskNewCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskCloseCmd)
	taskCmd.AddCommand(taskReopenCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskURLCmd)
	taskCmd.AddCommand(taskResolveCmd)
	taskCmd.AddCommand(taskLabelCmd)
	rootCmd.AddCommand(taskCmd)
}

// taskRefArgs accepts lead positional arguments followed by a task reference.
func taskRefArgs(lead int) cobra.PositionalArgs {
	return cobra.RangeArgs(lead+1, lead+2)
}

func requireTaskService() error {
	if taskService == nil {
		return errors.New("task service not configured")
	}
	return nil
}

// taskRef resolves a task URL or a repository URL and id.
func taskRef(args []string) (repositoryURL, taskID string, err error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	return taskService.Resolve(args[0])
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	if err := requireTaskService(); err != nil {
		return err
	}

	repoURL, taskID, err := taskRef(args)
	if err != nil {
		return err
	}

	data, err := taskService.Get(cmd.Context(), repoURL, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	return render(cmd, data, func() {
		printTaskData(cmd, data)
	})
}

func printTaskData(cmd *cobra.Command, data *domain.TaskData) {
	cmd.Printf("#%s %s\n", data.TaskID, data.Value(domain.AttributeSummary))
	cmd.Printf("URL: %s\n", taskService.TaskURL(data.RepositoryURL, data.TaskID))
	cmd.Println()

	for _, attr := range data.Attributes {
		switch attr.ID {
		case domain.AttributeSummary, domain.AttributeDescription, domain.AttributeOperation:
			continue
		}
		if attr.Value() == "" {
			continue
		}
		label := attr.Meta.Label
		if label == "" {
			label = attr.ID
		}
		cmd.Printf("%-14s %s\n", label+":", attr.Value())
	}

	if desc := data.Value(domain.AttributeDescription); desc != "" {
		cmd.Println()
		cmd.Println(desc)
	}
}

func runTaskNew(cmd *cobra.Command, args []string) error {
	if err := requireTaskService(); err != nil {
		return err
	}

	data, err := taskService.New(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	data.SetValue(domain.AttributeSummary, newSummary)
	data.SetValue(domain.AttributeDescription, newDescription)

	return submitTask(cmd, data)
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	if err := requireTaskService(); err != nil {
		return err
	}
	if !cmd.Flags().Changed("summary") && !cmd.Flags().Changed("description") {
		return errors.New("nothing to change: set --summary or --description")
	}

	repoURL, taskID, err := taskRef(args)
	if err != nil {
		return err
	}

	data, err := taskService.Get(cmd.Context(), repoURL, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if cmd.Flags().Changed("summary") {
		data.SetValue(domain.AttributeSummary, editSummary)
	}
	if cmd.Flags().Changed("description") {
		data.SetValue(domain.AttributeDescription, editDescription)
	}

	return submitTask(cmd, data)
}

func submitTask(cmd *cobra.Command, data *domain.TaskData) error {
	resp, err := taskService.Submit(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("failed to submit task: %w", err)
	}
	return renderResponse(cmd, data.RepositoryURL, resp)
}

func renderResponse(cmd *cobra.Command, repoURL string, resp *domain.RepositoryResponse) error {
	return render(cmd, resp, func() {
		verb := "Updated"
		if resp.Kind == domain.ResponseTaskCreated {
			verb = "Created"
		}
		cmd.Printf("%s task #%s: %s\n", verb, resp.TaskID, taskService.TaskURL(repoURL, resp.TaskID))
	})
}

func runTaskTransition(op domain.TaskOperation) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireTaskService(); err != nil {
			return err
		}

		repoURL, taskID, err := taskRef(args)
		if err != nil {
			return err
		}

		var resp *domain.RepositoryResponse
		if op == domain.OperationClose {
			resp, err = taskService.Close(cmd.Context(), repoURL, taskID)
		} else {
			resp, err = taskService.Reopen(cmd.Context(), repoURL, taskID)
		}
		if err != nil {
			return fmt.Errorf("failed to %s task: %w", strings.ToLower(op.ID()), err)
		}
		return renderResponse(cmd, repoURL, resp)
	}
}

func runTaskList(cmd *cobra.Command, args []string) error {
	if err := requireTaskService(); err != nil {
		return err
	}

	tasks, err := taskService.List(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	return render(cmd, tasks, func() {
		if len(tasks) == 0 {
			cmd.Println("No tasks. Run a query or search to fetch issues.")
			return
		}
		for i := range tasks {
			cmd.Printf("#%s\t[%s]\t%s\n", tasks[i].TaskID, tasks[i].Status, tasks[i].Summary)
		}
	})
}

func runTaskURL(cmd *cobra.Command, args []string) error {
	if err := requireTaskService(); err != nil {
		return err
	}
	cmd.Println(taskService.TaskURL(args[0], args[1]))
	return nil
}

func runTaskResolve(cmd *cobra.Command, args []string) error {
	if err := requireTaskService(); err != nil {
		return err
	}

	repoURL, taskID, err := taskService.Resolve(args[0])
	if err != nil {
		return err
	}

	out := struct {
		RepositoryURL string `json:"repository_url" yaml:"repository_url"`
		TaskID        string `json:"task_id" yaml:"task_id"`
	}{repoURL, taskID}

	return render(cmd, out, func() {
		cmd.Printf("%s\t%s\n", repoURL, taskID)
	})
}

func runTaskLabel(add bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireTaskService(); err != nil {
			return err
		}

		label := args[0]
		repoURL, taskID, err := taskRef(args[1:])
		if err != nil {
			return err
		}

		var changed bool
		if add {
			changed, err = taskService.AddLabel(cmd.Context(), repoURL, taskID, label)
		} else {
			changed, err = taskService.RemoveLabel(cmd.Context(), repoURL, taskID, label)
		}
		if err != nil {
			return fmt.Errorf("failed to update labels: %w", err)
		}

		switch {
		case !changed:
			cmd.Printf("Labels of #%s unchanged\n", taskID)
		case add:
			cmd.Printf("Added label %q to #%s\n", label, taskID)
		default:
			cmd.Printf("Removed label %q from #%s\n", label, taskID)
		}
		return nil
	}
}
