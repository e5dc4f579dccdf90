package services

import (
	"context"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

var taskEventMetrics = map[string]string{
	task.RoutingKeyCreated:   observability.MetricTasksCreated,
	task.RoutingKeyCompleted: observability.MetricTasksCompleted,
	task.RoutingKeyDeleted:   observability.MetricTasksDeleted,
}

// TaskMetricsConsumer counts task lifecycle events. Created tasks are tagged
// with the 1-3-5 bucket they landed in.
type TaskMetricsConsumer struct {
	metrics observability.Metrics
}

// NewTaskMetricsConsumer creates a new TaskMetricsConsumer.
func NewTaskMetricsConsumer(metrics observability.Metrics) *TaskMetricsConsumer {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &TaskMetricsConsumer{metrics: metrics}
}

// EventTypes implements eventbus.EventConsumer.
func (c *TaskMetricsConsumer) EventTypes() []string {
	return []string{task.RoutingKeyCreated, task.RoutingKeyCompleted, task.RoutingKeyDeleted}
}

// Handle implements eventbus.EventConsumer.
func (c *TaskMetricsConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	name, ok := taskEventMetrics[event.RoutingKey]
	if !ok {
		return nil
	}
	if event.RoutingKey != task.RoutingKeyCreated {
		c.metrics.Counter(name, 1)
		return nil
	}

	var created task.TaskCreated
	if err := event.Decode(&created); err != nil {
		return err
	}
	c.metrics.Counter(name, 1, observability.T("bucket", created.Bucket))
	return nil
}
