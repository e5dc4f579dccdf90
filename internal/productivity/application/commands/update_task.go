package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/optiflow/internal/shared/application"
	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// UpdateTaskCommand patches a task. Nil fields are left unchanged.
type UpdateTaskCommand struct {
	TaskID         string
	Name           *string
	Description    *string
	Category       *string
	Priority       *string
	Status         *string
	Bucket         *string
	DueDate        *value_objects.Date
	ClearDueDate   bool
	EstimatedHours *float64
}

// UpdateTaskResult contains the result of updating a task.
type UpdateTaskResult = ScheduleResult

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo  task.Repository
	uow       sharedApplication.UnitOfWork
	resolver  CapacityResolver
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(
	taskRepo task.Repository,
	uow sharedApplication.UnitOfWork,
	resolver CapacityResolver,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:  taskRepo,
		uow:       uow,
		resolver:  resolver,
		publisher: publisher,
		logger:    observability.OrDefault(logger),
	}
}

// Handle applies the patch to a copy of the stored task, resolves capacity
// when the bucket or due date changed, and replaces the stored record.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*UpdateTaskResult, error) {
	var (
		result *UpdateTaskResult
		events []domain.DomainEvent
	)

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		stored, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}

		candidate := stored.Clone()
		fields, err := applyPatch(candidate, cmd)
		if err != nil {
			return err
		}
		candidate.RecordUpdate(fields)

		tasks, err := h.taskRepo.FindAll(txCtx)
		if err != nil {
			return err
		}
		res := h.resolver.ResolveUpdate(txCtx, stored, candidate, tasks)

		if err := h.taskRepo.Save(txCtx, candidate); err != nil {
			return err
		}

		events = collectEvents(ctx, candidate, res)
		result = newScheduleResult(candidate, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, events)
	return result, nil
}

func applyPatch(t *task.Task, cmd UpdateTaskCommand) ([]string, error) {
	var fields []string

	if cmd.Name != nil {
		if err := t.SetName(*cmd.Name); err != nil {
			return nil, err
		}
		fields = append(fields, "name")
	}
	if cmd.Description != nil {
		if err := t.SetDescription(*cmd.Description); err != nil {
			return nil, err
		}
		fields = append(fields, "description")
	}
	if cmd.Category != nil {
		if err := t.SetCategory(*cmd.Category); err != nil {
			return nil, err
		}
		fields = append(fields, "category")
	}
	if cmd.Priority != nil {
		priority, err := value_objects.ParsePriority(*cmd.Priority)
		if err != nil {
			return nil, err
		}
		if err := t.SetPriority(priority); err != nil {
			return nil, err
		}
		fields = append(fields, "priority")
	}
	if cmd.Status != nil {
		status, err := task.ParseStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		if err := t.SetStatus(status); err != nil {
			return nil, err
		}
		fields = append(fields, "status")
	}
	if cmd.Bucket != nil {
		bucket, err := value_objects.ParseBucket(*cmd.Bucket)
		if err != nil {
			return nil, err
		}
		if err := t.SetBucket(bucket); err != nil {
			return nil, err
		}
		fields = append(fields, "bucket")
	}
	switch {
	case cmd.ClearDueDate:
		if err := t.SetDueDate(nil); err != nil {
			return nil, err
		}
		fields = append(fields, "due_date")
	case cmd.DueDate != nil:
		if err := t.SetDueDate(cmd.DueDate); err != nil {
			return nil, err
		}
		fields = append(fields, "due_date")
	}
	if cmd.EstimatedHours != nil {
		estimate, err := value_objects.NewEstimate(*cmd.EstimatedHours)
		if err != nil {
			return nil, err
		}
		if err := t.SetEstimate(estimate); err != nil {
			return nil, err
		}
		fields = append(fields, "estimated_hours")
	}

	return fields, nil
}
