package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
)

var completeCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Toggle a task between completed and todo",
	Long: `Mark a task as completed. Running the command on a completed
task reopens it as todo.

Examples:
  optiflow task complete 3f2a`,
	Aliases: []string{"done", "toggle"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		id, err := resolveTaskID(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		result, err := app.ToggleCompleteHandler.Handle(cmd.Context(), commands.ToggleCompleteCommand{TaskID: id})
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		if result.Completed {
			fmt.Fprintf(cmd.OutOrStdout(), "Task completed: %s\n", result.TaskID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Task reopened: %s\n", result.TaskID)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Short:   "Delete a task",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		id, err := resolveTaskID(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		if err := app.DeleteTaskHandler.Handle(cmd.Context(), commands.DeleteTaskCommand{TaskID: id}); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %s\n", id)
		return nil
	},
}
