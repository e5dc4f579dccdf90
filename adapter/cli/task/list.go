package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
)

var (
	showAll        bool
	filterStatus   string
	filterPriority string
	filterBucket   string
	filterCategory string
	filterDue      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks with optional filtering.

Completed tasks are hidden unless --all or --status completed is given.

Examples:
  optiflow task list                      # Active tasks
  optiflow task list --all                # All tasks
  optiflow task list --priority a         # Only A tasks
  optiflow task list --due 2024-01-15     # Tasks due on a day
  optiflow task list --bucket major       # Major tasks`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		query := queries.ListTasksQuery{
			Status:   filterStatus,
			Priority: filterPriority,
			Bucket:   filterBucket,
			Category: filterCategory,
			Active:   !showAll && filterStatus == "",
		}
		due, err := cli.ParseDateFlag("due", filterDue)
		if err != nil {
			return err
		}
		query.DueDate = due

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintf(out, "Tasks (%d):\n\n", len(tasks))
		for _, t := range tasks {
			cli.PrintTaskLine(out, "  ", t)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include completed tasks")
	listCmd.Flags().StringVar(&filterStatus, "status", "", "filter by status (todo, inProgress, completed, delegated)")
	listCmd.Flags().StringVarP(&filterPriority, "priority", "p", "", "filter by priority (a-e)")
	listCmd.Flags().StringVarP(&filterBucket, "bucket", "b", "", "filter by bucket (major, medium, small)")
	listCmd.Flags().StringVarP(&filterCategory, "category", "c", "", "filter by category")
	listCmd.Flags().StringVar(&filterDue, "due", "", "filter by due date (YYYY-MM-DD)")
}
