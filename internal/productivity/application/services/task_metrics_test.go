package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

func TestTaskMetricsConsumer(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	bus := eventbus.NewInProcessEventBus(nil)
	bus.RegisterConsumer(NewTaskMetricsConsumer(metrics))

	tk, err := task.NewTask("count me", value_objects.PriorityB, nil)
	require.NoError(t, err)
	tk.ToggleComplete()
	tk.ToggleComplete()
	tk.MarkDeleted()

	require.NoError(t, bus.Publish(context.Background(), tk.DomainEvents()...))

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksCreated, observability.T("bucket", "medium")))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksCompleted))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksDeleted))
}

func TestTaskMetricsConsumer_IgnoresOtherEvents(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	consumer := NewTaskMetricsConsumer(metrics)

	err := consumer.Handle(context.Background(), &eventbus.ConsumedEvent{RoutingKey: task.RoutingKeyUpdated})

	require.NoError(t, err)
	assert.Equal(t, int64(0), metrics.GetCounter(observability.MetricTasksCreated))
}

func TestTaskMetricsConsumer_BadPayload(t *testing.T) {
	consumer := NewTaskMetricsConsumer(observability.NewInMemoryMetrics())

	err := consumer.Handle(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: task.RoutingKeyCreated,
		Payload:    []byte("{"),
	})

	assert.ErrorContains(t, err, "decode productivity.task.created")
}
