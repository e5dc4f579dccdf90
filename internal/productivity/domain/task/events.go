package task

import (
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated     = "productivity.task.created"
	RoutingKeyUpdated     = "productivity.task.updated"
	RoutingKeyRescheduled = "productivity.task.rescheduled"
	RoutingKeyCompleted   = "productivity.task.completed"
	RoutingKeyReopened    = "productivity.task.reopened"
	RoutingKeyDeleted     = "productivity.task.deleted"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Name     string `json:"name"`
	Priority string `json:"priority"`
	Bucket   string `json:"bucket"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID, name, priority, bucket string) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		Name:      name,
		Priority:  priority,
		Bucket:    bucket,
	}
}

// TaskUpdated is emitted when a task is edited.
type TaskUpdated struct {
	domain.BaseEvent
	Fields []string `json:"fields"`
}

// NewTaskUpdated creates a TaskUpdated event.
func NewTaskUpdated(taskID string, fields []string) *TaskUpdated {
	return &TaskUpdated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyUpdated),
		Fields:    fields,
	}
}

// TaskRescheduled is emitted when a full day pushes a task to a later date.
type TaskRescheduled struct {
	domain.BaseEvent
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Bucket string `json:"bucket"`
}

// NewTaskRescheduled creates a TaskRescheduled event.
func NewTaskRescheduled(taskID string, from, to value_objects.Date, bucket string) *TaskRescheduled {
	e := &TaskRescheduled{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyRescheduled),
		To:        to.String(),
		Bucket:    bucket,
	}
	if !from.IsZero() {
		e.From = from.String()
	}
	return e
}

// TaskCompleted is emitted when a task is completed.
type TaskCompleted struct {
	domain.BaseEvent
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID string) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCompleted),
	}
}

// TaskReopened is emitted when a completed task goes back to todo.
type TaskReopened struct {
	domain.BaseEvent
}

// NewTaskReopened creates a TaskReopened event.
func NewTaskReopened(taskID string) *TaskReopened {
	return &TaskReopened{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyReopened),
	}
}

// TaskDeleted is emitted when a task is removed.
type TaskDeleted struct {
	domain.BaseEvent
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(taskID string) *TaskDeleted {
	return &TaskDeleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyDeleted),
	}
}
