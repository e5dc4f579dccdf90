package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
)

var showCmd = &cobra.Command{
	Use:   "show <task-id|prefix>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		t, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{TaskID: args[0], AllowPrefix: true})
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", cli.StatusIcon(t.Status), t.Name)
		fmt.Fprintf(out, "  ID:          %s\n", t.ID)
		fmt.Fprintf(out, "  Priority:    %s (%s)\n", t.Priority, t.PriorityLabel)
		fmt.Fprintf(out, "  Status:      %s\n", t.Status)
		fmt.Fprintf(out, "  Bucket:      %s\n", t.Bucket)
		fmt.Fprintf(out, "  Category:    %s\n", t.Category)
		if t.DueDate != "" {
			fmt.Fprintf(out, "  Due:         %s\n", t.DueDate)
		}
		fmt.Fprintf(out, "  Estimate:    %gh\n", t.EstimatedHours)
		if t.Description != "" {
			fmt.Fprintf(out, "  Description: %s\n", t.Description)
		}
		return nil
	},
}
