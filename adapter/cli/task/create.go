package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
)

var (
	priority    string
	category    string
	status      string
	bucket      string
	description string
	dueDate     string
	noDue       bool
	estimate    float64
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new task",
	Long: `Create a new task with a name and optional properties.

The task is due today unless --due or --no-due is given. When the
due date's 1-3-5 bucket is full the task rolls over to the next day
with room, up to two weeks ahead.

Examples:
  optiflow task create "Complete project report"
  optiflow task create "Review PR" -p a --bucket medium --estimate 0.5
  optiflow task create "Write docs" --category Work --due 2024-01-15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		createCmd := commands.CreateTaskCommand{
			Name:        args[0],
			Description: description,
			Category:    category,
			Priority:    priority,
			Status:      status,
			Bucket:      bucket,
			NoDueDate:   noDue,
		}

		due, err := cli.ParseDateFlag("due", dueDate)
		if err != nil {
			return err
		}
		createCmd.DueDate = due

		if cmd.Flags().Changed("estimate") {
			hours := estimate
			createCmd.EstimatedHours = &hours
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task created: %s\n", args[0])
		cli.PrintScheduleResult(out, result)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "ABCDE priority (a-e, default b)")
	createCmd.Flags().StringVarP(&category, "category", "c", "", "task category (default work)")
	createCmd.Flags().StringVar(&status, "status", "", "initial status (todo, inProgress, completed, delegated)")
	createCmd.Flags().StringVarP(&bucket, "bucket", "b", "", "1-3-5 bucket (major, medium, small; default from priority)")
	createCmd.Flags().StringVar(&description, "description", "", "task description")
	createCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD, default today)")
	createCmd.Flags().BoolVar(&noDue, "no-due", false, "create the task without a due date")
	createCmd.Flags().Float64VarP(&estimate, "estimate", "e", 1, "estimated hours")
}
