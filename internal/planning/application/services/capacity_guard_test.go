package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

var day0 = value_objects.NewDate(2024, time.May, 10)

func majorOn(t *testing.T, d value_objects.Date) *task.Task {
	t.Helper()
	tk, err := task.NewTask("major", value_objects.PriorityA, &d)
	require.NoError(t, err)
	return tk
}

func TestCapacityGuard_ResolveNew_Fits(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	guard := NewCapacityGuard(metrics, nil)

	candidate := majorOn(t, day0)
	res := guard.ResolveNew(context.Background(), candidate, nil)

	assert.True(t, res.Valid)
	assert.False(t, res.RolledOver())
	assert.Equal(t, int64(0), metrics.GetCounter(observability.MetricRollovers, observability.T("bucket", "major")))
}

func TestCapacityGuard_ResolveNew_RollsOver(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	guard := NewCapacityGuard(metrics, nil)

	existing := []*task.Task{majorOn(t, day0)}
	candidate := majorOn(t, day0)

	res := guard.ResolveNew(context.Background(), candidate, existing)

	assert.False(t, res.Valid)
	assert.True(t, res.RolledOver())
	assert.True(t, candidate.DueDate().Equal(day0.AddDays(1)))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricRollovers, observability.T("bucket", "major")))
	assert.Equal(t, int64(0), metrics.GetCounter(observability.MetricHorizonExhausted, observability.T("bucket", "major")))
}

func TestCapacityGuard_ResolveNew_HorizonExhausted(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	guard := NewCapacityGuard(metrics, nil)

	var existing []*task.Task
	for i := 0; i <= 14; i++ {
		existing = append(existing, majorOn(t, day0.AddDays(i)))
	}
	candidate := majorOn(t, day0)

	res := guard.ResolveNew(context.Background(), candidate, existing)

	assert.True(t, res.HorizonExhausted)
	assert.True(t, candidate.DueDate().Equal(day0.AddDays(15)))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricHorizonExhausted, observability.T("bucket", "major")))
}

func TestCapacityGuard_ResolveUpdate_UnchangedScheduleSkips(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	guard := NewCapacityGuard(metrics, nil)

	other := majorOn(t, day0)
	stored := majorOn(t, day0)
	candidate := stored.Clone()
	require.NoError(t, candidate.SetName("renamed"))

	res := guard.ResolveUpdate(context.Background(), stored, candidate, []*task.Task{other, stored})

	assert.True(t, res.Valid)
	assert.True(t, candidate.DueDate().Equal(day0))
	assert.Equal(t, int64(0), metrics.GetCounter(observability.MetricRollovers, observability.T("bucket", "major")))
}

func TestNewCapacityGuard_NilMetrics(t *testing.T) {
	guard := NewCapacityGuard(nil, nil)

	assert.NotPanics(t, func() {
		guard.ResolveNew(context.Background(), majorOn(t, day0), []*task.Task{majorOn(t, day0)})
	})
}
