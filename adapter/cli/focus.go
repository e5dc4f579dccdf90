package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	focusApp "github.com/felixgeelhaar/optiflow/internal/focus/application"
	"github.com/felixgeelhaar/optiflow/internal/focus/domain"
)

var focusDetach bool

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Control the focus clock",
	Long: `Control the pomodoro focus clock.

A work phase is followed by a break. The session is persisted, so a
paused clock can be resumed later or from another process.

Examples:
  optiflow focus start            # Start and watch the countdown
  optiflow focus start --detach   # Start without watching
  optiflow focus status           # Show the remaining time
  optiflow focus pause            # Pause the clock
  optiflow focus resume           # Resume a paused clock
  optiflow focus reset            # Back to a full work phase`,
	Aliases: []string{"pomodoro", "timer"},
}

var focusStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the focus clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := requireFocus()
		if err != nil {
			return err
		}

		session, err := svc.Start(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		banner(out, "FOCUS MODE", 50)
		fmt.Fprintf(out, "  Work: %s\n", session.WorkDuration)
		if session.BreakDuration > 0 {
			fmt.Fprintf(out, "  Break: %s\n", session.BreakDuration)
		}

		if focusDetach {
			fmt.Fprintf(out, "  Started, %s remaining\n", session.Clock())
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Press Ctrl+C to pause the session")
		rule(out, 50)
		return watchFocus(cmd.Context(), svc, out)
	},
}

var focusStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the focus clock",
	RunE: focusAction(func(ctx context.Context, svc *focusApp.Service) (*domain.Session, error) {
		return svc.Status(ctx)
	}),
}

var focusPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the focus clock",
	RunE: focusAction(func(ctx context.Context, svc *focusApp.Service) (*domain.Session, error) {
		return svc.Pause(ctx)
	}),
}

var focusResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused focus clock",
	RunE: focusAction(func(ctx context.Context, svc *focusApp.Service) (*domain.Session, error) {
		return svc.Resume(ctx)
	}),
}

var focusResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the focus clock to a full work phase",
	RunE: focusAction(func(ctx context.Context, svc *focusApp.Service) (*domain.Session, error) {
		return svc.Reset(ctx)
	}),
}

func requireFocus() (*focusApp.Service, error) {
	app, err := RequireApp()
	if err != nil {
		return nil, err
	}
	if app.FocusService == nil {
		return nil, fmt.Errorf("focus clock not configured")
	}
	return app.FocusService, nil
}

func focusAction(fn func(context.Context, *focusApp.Service) (*domain.Session, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := requireFocus()
		if err != nil {
			return err
		}
		session, err := fn(cmd.Context(), svc)
		if err != nil {
			return err
		}
		PrintSession(cmd.OutOrStdout(), session)
		return nil
	}
}

// PrintSession writes a one-line focus clock summary.
func PrintSession(w io.Writer, s *domain.Session) {
	fmt.Fprintf(w, "  [%s] %s %s  (completed: %d)\n",
		strings.ToUpper(string(s.Phase)), s.Clock(), s.State, s.CompletedCount)
}

// watchFocus runs the ticker until the cycle ends or the user interrupts,
// in which case the session is paused.
func watchFocus(ctx context.Context, svc *focusApp.Service, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	var once sync.Once
	svc.SetListener(func(session domain.Session, finished domain.Phase) {
		switch finished {
		case domain.PhaseWork:
			fmt.Fprintln(out, "\n  Focus session complete!")
			if session.Phase == domain.PhaseBreak {
				fmt.Fprintln(out, "  BREAK TIME")
				rule(out, 50)
			}
		case domain.PhaseBreak:
			fmt.Fprintln(out, "\n  Break complete! Ready for next session.")
		}
		if !session.IsRunning() {
			once.Do(func() { close(done) })
			return
		}
		printProgress(out, &session)
	})
	defer svc.SetListener(nil)

	if err := svc.StartTicker(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
	}

	// The signal context is done; pause with a fresh one.
	pauseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session, err := svc.Pause(pauseCtx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n\n  Session paused!")
	PrintSession(out, session)
	return nil
}

func printProgress(out io.Writer, s *domain.Session) {
	total := s.WorkDuration
	if s.Phase == domain.PhaseBreak {
		total = s.BreakDuration
	}
	if total <= 0 {
		return
	}

	progress := float64(total-s.Remaining) / float64(total)
	barWidth := 30
	filled := int(progress * float64(barWidth))
	bar := strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled)

	fmt.Fprintf(out, "\r  [%s] %s [%s] %.0f%%",
		strings.ToUpper(string(s.Phase)),
		s.Clock(),
		bar,
		progress*100,
	)
}

func init() {
	focusStartCmd.Flags().BoolVar(&focusDetach, "detach", false, "start without watching the countdown")

	focusCmd.AddCommand(focusStartCmd)
	focusCmd.AddCommand(focusStatusCmd)
	focusCmd.AddCommand(focusPauseCmd)
	focusCmd.AddCommand(focusResumeCmd)
	focusCmd.AddCommand(focusResetCmd)

	rootCmd.AddCommand(focusCmd)
}
