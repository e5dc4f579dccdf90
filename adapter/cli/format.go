package cli

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
)

// StatusIcon renders a task status as a checkbox.
func StatusIcon(status string) string {
	switch status {
	case "completed":
		return "[x]"
	case "inProgress":
		return "[>]"
	case "delegated":
		return "[~]"
	default:
		return "[ ]"
	}
}

// PrintTaskLine writes a one-line task summary.
func PrintTaskLine(w io.Writer, indent string, t queries.TaskDTO) {
	due := ""
	if t.DueDate != "" {
		due = " due " + t.DueDate
	}
	fmt.Fprintf(w, "%s%s (%s) %s [%s]%s  %s\n",
		indent, StatusIcon(t.Status), t.Priority, t.Name, t.Bucket, due, shortID(t.ID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
