package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.May, 10, 15, 0, 0, 0, time.UTC)

func today() value_objects.Date { return value_objects.DateOf(now) }

type taskOpt func(t *testing.T, tsk *task.Task)

func withStatus(s task.Status) taskOpt {
	return func(t *testing.T, tsk *task.Task) { require.NoError(t, tsk.SetStatus(s)) }
}

func withBucket(b value_objects.Bucket) taskOpt {
	return func(t *testing.T, tsk *task.Task) { require.NoError(t, tsk.SetBucket(b)) }
}

func withDescription(d string) taskOpt {
	return func(t *testing.T, tsk *task.Task) { require.NoError(t, tsk.SetDescription(d)) }
}

// newTask builds a task due offset days from today; a nil offset means no due date.
func newTask(t *testing.T, name string, p value_objects.Priority, offset *int, opts ...taskOpt) *task.Task {
	t.Helper()
	var due *value_objects.Date
	if offset != nil {
		d := today().AddDays(*offset)
		due = &d
	}
	tsk, err := task.NewTask(name, p, due)
	require.NoError(t, err)
	for _, opt := range opts {
		opt(t, tsk)
	}
	return tsk
}

func day(n int) *int { return &n }
