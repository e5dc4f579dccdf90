package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	planningQueries "github.com/felixgeelhaar/optiflow/internal/planning/application/queries"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/security"
)

var (
	planDate     string
	scheduleDate string
	scheduleICS  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the 1-3-5 plan of a day",
	Long: `Show the tasks due on a day split into the 1-3-5 buckets:
one major, three medium and five small tasks.

Examples:
  optiflow plan                    # Today
  optiflow plan --date 2024-01-15  # A specific date`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		date, err := ParseDateFlag("date", planDate)
		if err != nil {
			return err
		}

		plan, err := app.PlanningHandler.DayPlan(cmd.Context(), planningQueries.DateQuery{Date: date})
		if err != nil {
			return fmt.Errorf("failed to plan day: %w", err)
		}

		out := cmd.OutOrStdout()
		banner(out, "1-3-5 plan for "+plan.Date, 60)
		for _, b := range plan.Buckets {
			marker := ""
			if b.Exceeded {
				marker = "  OVER CAPACITY"
			}
			fmt.Fprintf(out, "\n  %s (%d/%d)%s\n", b.Bucket, b.TotalCount, b.Quota, marker)
			rule(out, 60)
			for _, t := range b.Scheduled {
				PrintTaskLine(out, "  ", t)
			}
			for i := len(b.Scheduled); i < b.Quota; i++ {
				fmt.Fprintln(out, "  [ ] (open)")
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the time-blocked schedule of a day",
	Long: `Lay the day's 1-3-5 plan out over the default time blocks.

The major task takes the morning deep-work block, the first two
medium tasks take the late-morning and early-afternoon blocks.

Examples:
  optiflow schedule                       # Today
  optiflow schedule --date 2024-01-15     # A specific date
  optiflow schedule --ics today.ics       # Also write an iCalendar file
  optiflow schedule --ics -               # Write iCalendar to stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		date, err := ParseDateFlag("date", scheduleDate)
		if err != nil {
			return err
		}
		query := planningQueries.DateQuery{Date: date}
		out := cmd.OutOrStdout()

		if scheduleICS != "" {
			blocks, day, err := app.PlanningHandler.TimeBlocks(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("failed to build schedule: %w", err)
			}
			if scheduleICS == "-" {
				return app.ICSExporter.Encode(out, day, blocks)
			}
			data, err := app.ICSExporter.Export(day, blocks)
			if err != nil {
				return err
			}
			path, err := security.WriteFile(scheduleICS, data)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", scheduleICS, err)
			}
			fmt.Fprintf(out, "Exported %d blocks to %s\n", len(blocks), path)
			return nil
		}

		schedule, err := app.PlanningHandler.Schedule(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to build schedule: %w", err)
		}

		banner(out, "Schedule for "+schedule.Date, 60)
		for _, b := range schedule.Blocks {
			fmt.Fprintf(out, "  %-19s %s\n", b.TimeRange, b.Activity)
			if b.Description != "" {
				fmt.Fprintf(out, "  %-19s   %s\n", "", b.Description)
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planDate, "date", "", "date to plan (YYYY-MM-DD, default today)")
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "date to schedule (YYYY-MM-DD, default today)")
	scheduleCmd.Flags().StringVar(&scheduleICS, "ics", "", "write the schedule as iCalendar to a file (- for stdout)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(scheduleCmd)
}
