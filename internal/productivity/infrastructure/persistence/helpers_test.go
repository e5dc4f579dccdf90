package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

var testDay = value_objects.NewDate(2024, time.May, 10)

func newTestTask(t *testing.T, name string, priority value_objects.Priority) *task.Task {
	t.Helper()
	due := testDay
	tk, err := task.NewTask(name, priority, &due)
	require.NoError(t, err)
	tk.ClearDomainEvents()
	return tk
}

func names(tasks []*task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Name())
	}
	return out
}
