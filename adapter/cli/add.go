package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
)

var addCmd = &cobra.Command{
	Use:   "add <entry>",
	Short: "Quick add a task",
	Long: `Quickly add a task due today.

Prefix the entry with a priority letter and a colon to set the
ABCDE priority; without a prefix the task gets priority B.

Examples:
  optiflow add "Buy groceries"
  optiflow add "a: Finish the quarterly report"
  optiflow add "D: Ask Sam to file the expenses"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		input := strings.Join(args, " ")
		result, err := app.QuickAddHandler.Handle(cmd.Context(), commands.QuickAddCommand{Input: input})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Task added!")
		PrintScheduleResult(out, result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
