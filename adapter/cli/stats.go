package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show task statistics",
	Aliases: []string{"insights"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		stats, err := app.PlanningHandler.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		out := cmd.OutOrStdout()
		banner(out, "Task Stats", 40)
		fmt.Fprintf(out, "  Total:        %d\n", stats.Total)
		fmt.Fprintf(out, "  Completed:    %d\n", stats.Completed)
		fmt.Fprintf(out, "  In progress:  %d\n", stats.InProgress)
		fmt.Fprintf(out, "  To do:        %d\n", stats.Todo)
		fmt.Fprintf(out, "  Delegated:    %d\n", stats.Delegated)
		fmt.Fprintf(out, "  Completion:   %.0f%%\n", stats.CompletionRate*100)
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
