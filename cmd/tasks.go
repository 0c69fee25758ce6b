package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/client"
	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	model "task-tracker.com/task-tracker/internal/models"
)

var tasksCmd = &cobra.Command{
	Use:               "tasks",
	Short:             "Manage your tasks",
	PersistentPreRunE: requireToken,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := client.NewStore(newClient())
		if err := store.Refresh(cmd.Context()); err != nil {
			return err
		}
		return printTasks(cmd.OutOrStdout(), store.Tasks())
	},
}

var tasksShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := newClient().GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), task)
	},
}

var tasksRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task permanently",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteTask(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func newTasksAddCmd() *cobra.Command {
	var description, status string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateTaskRequest{Title: args[0], Description: description}
			if cmd.Flags().Changed("status") {
				s := constants.TaskStatus(status)
				req.Status = &s
			}

			task, err := newClient().CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), task)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "pending, in-progress or completed (default pending)")
	return cmd
}

func newTasksUpdateCmd() *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a task's title, description or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.UpdateTaskRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("status") {
				s := constants.TaskStatus(status)
				req.Status = &s
			}
			if req.Title == nil && req.Description == nil && req.Status == nil {
				return fmt.Errorf("nothing to update: pass --title, --description or --status")
			}

			task, err := newClient().UpdateTask(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), task)
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "pending, in-progress or completed")
	return cmd
}

func printTasks(w io.Writer, tasks []model.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "no tasks")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tUPDATED")
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", task.ID, task.Status, task.Title, task.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	tasksCmd.AddCommand(tasksListCmd, tasksShowCmd, tasksRemoveCmd, newTasksAddCmd(), newTasksUpdateCmd())
	rootCmd.AddCommand(tasksCmd)
}
