package task

import (
	"regexp"
	"strings"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

var quickAddPattern = regexp.MustCompile(`(?i)^([a-e]):\s*(.*)`)

// QuickAdd is the result of parsing a one-line task entry.
type QuickAdd struct {
	Name     string
	Priority value_objects.Priority
}

// ParseQuickAdd parses "<a-e>: name". Input without a priority prefix gets the default priority.
func ParseQuickAdd(input string) (QuickAdd, error) {
	input = strings.TrimSpace(input)

	result := QuickAdd{Name: input, Priority: value_objects.DefaultPriority}
	if m := quickAddPattern.FindStringSubmatch(input); m != nil {
		p, err := value_objects.ParsePriority(m[1])
		if err != nil {
			return QuickAdd{}, err
		}
		result.Priority = p
		result.Name = strings.TrimSpace(m[2])
	}

	if result.Name == "" {
		return QuickAdd{}, ErrEmptyName
	}
	return result, nil
}
