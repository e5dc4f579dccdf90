package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Show the Eisenhower matrix",
	Long: `Show tasks in the four Eisenhower quadrants, grouped by ABCDE
priority inside each quadrant.

  Do        priority A, due today or earlier or already in progress
  Decide    the remaining A tasks and every B task
  Delegate  priority C or D, due today or earlier
  Delete    priority E, and C or D tasks that are not yet due`,
	Aliases: []string{"eisenhower"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		matrix, err := app.PlanningHandler.Matrix(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build matrix: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, q := range matrix.Quadrants {
			banner(out, fmt.Sprintf("%s (%d)", q.Title, q.Total), 60)
			fmt.Fprintf(out, "  %s\n", q.Hint)
			if q.Total == 0 {
				fmt.Fprintln(out, "    (empty)")
				continue
			}
			for _, g := range q.Groups {
				if len(g.Tasks) == 0 {
					continue
				}
				fmt.Fprintf(out, "   %s\n", g.Label)
				for _, t := range g.Tasks {
					PrintTaskLine(out, "    ", t)
				}
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

var abcdeCmd = &cobra.Command{
	Use:   "abcde",
	Short: "List active tasks by ABCDE priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		groups, err := app.PlanningHandler.ABCDE(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to group tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, g := range groups {
			banner(out, fmt.Sprintf("%s (%d)", g.Label, len(g.Tasks)), 60)
			for _, t := range g.Tasks {
				PrintTaskLine(out, "  ", t)
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

var boardCmd = &cobra.Command{
	Use:     "board",
	Short:   "Show tasks as a Kanban board",
	Aliases: []string{"kanban"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		columns, err := app.PlanningHandler.Board(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build board: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, c := range columns {
			banner(out, fmt.Sprintf("%s (%d)", c.Status, len(c.Tasks)), 60)
			for _, t := range c.Tasks {
				PrintTaskLine(out, "  ", t)
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(abcdeCmd)
	rootCmd.AddCommand(boardCmd)
}
