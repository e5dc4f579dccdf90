package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// ErrAppNotInitialized is returned by commands run without a wired application.
var ErrAppNotInitialized = errors.New("application not initialized")

// RequireApp returns the global application or ErrAppNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrAppNotInitialized
	}
	return app, nil
}

// ParseDateFlag parses an optional YYYY-MM-DD flag value. An empty value yields nil.
func ParseDateFlag(name, value string) (*value_objects.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := value_objects.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s format (use YYYY-MM-DD): %w", name, err)
	}
	return &d, nil
}

// PrintScheduleResult reports where a written task was placed.
func PrintScheduleResult(w io.Writer, result *commands.ScheduleResult) {
	fmt.Fprintf(w, "  ID: %s\n", result.TaskID)
	if result.DueDate != nil {
		fmt.Fprintf(w, "  Due: %s\n", result.DueDate)
	}
	if result.RolledOver && result.RequestedDate != nil {
		fmt.Fprintf(w, "  Rolled over from %s (day was full)\n", result.RequestedDate)
	}
	if result.HorizonExhausted {
		fmt.Fprintln(w, "  Warning: no free day within the next two weeks")
	}
}

func rule(w io.Writer, width int) {
	fmt.Fprintln(w, strings.Repeat("-", width))
}

func banner(w io.Writer, title string, width int) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", width))
}
