package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
)

var (
	updName        string
	updDescription string
	updCategory    string
	updPriority    string
	updStatus      string
	updBucket      string
	updDue         string
	updClearDue    bool
	updEstimate    float64
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Long: `Update the fields of a task. Only the given flags are changed.

Moving a task to a full day rolls it over like a new task.

Examples:
  optiflow task update 3f2a --priority a
  optiflow task update 3f2a --due 2024-01-16 --bucket major
  optiflow task update 3f2a --status inProgress
  optiflow task update 3f2a --clear-due`,
	Aliases: []string{"edit"},
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

		update := commands.UpdateTaskCommand{TaskID: id, ClearDueDate: updClearDue}
		flags := cmd.Flags()
		if flags.Changed("name") {
			update.Name = &updName
		}
		if flags.Changed("description") {
			update.Description = &updDescription
		}
		if flags.Changed("category") {
			update.Category = &updCategory
		}
		if flags.Changed("priority") {
			update.Priority = &updPriority
		}
		if flags.Changed("status") {
			update.Status = &updStatus
		}
		if flags.Changed("bucket") {
			update.Bucket = &updBucket
		}
		if flags.Changed("estimate") {
			update.EstimatedHours = &updEstimate
		}
		due, err := cli.ParseDateFlag("due", updDue)
		if err != nil {
			return err
		}
		update.DueDate = due

		result, err := app.UpdateTaskHandler.Handle(cmd.Context(), update)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Task updated!")
		cli.PrintScheduleResult(out, result)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updName, "name", "", "new name")
	updateCmd.Flags().StringVar(&updDescription, "description", "", "new description")
	updateCmd.Flags().StringVarP(&updCategory, "category", "c", "", "new category")
	updateCmd.Flags().StringVarP(&updPriority, "priority", "p", "", "new priority (a-e)")
	updateCmd.Flags().StringVar(&updStatus, "status", "", "new status (todo, inProgress, completed, delegated)")
	updateCmd.Flags().StringVarP(&updBucket, "bucket", "b", "", "new bucket (major, medium, small)")
	updateCmd.Flags().StringVar(&updDue, "due", "", "new due date (YYYY-MM-DD)")
	updateCmd.Flags().BoolVar(&updClearDue, "clear-due", false, "remove the due date")
	updateCmd.Flags().Float64VarP(&updEstimate, "estimate", "e", 0, "new estimated hours")
}
