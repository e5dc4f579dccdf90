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

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	Name        string
	Description string
	Category    string
	Priority    string // a-e, defaults to b
	Status      string
	Bucket      string // defaults from priority

	// DueDate defaults to today unless NoDueDate is set.
	DueDate   *value_objects.Date
	NoDueDate bool

	// EstimatedHours defaults to one hour.
	EstimatedHours *float64
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult = ScheduleResult

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo  task.Repository
	uow       sharedApplication.UnitOfWork
	resolver  CapacityResolver
	publisher eventbus.Publisher
	clock     Clock
	logger    *slog.Logger
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(
	taskRepo task.Repository,
	uow sharedApplication.UnitOfWork,
	resolver CapacityResolver,
	publisher eventbus.Publisher,
	clock Clock,
	logger *slog.Logger,
) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:  taskRepo,
		uow:       uow,
		resolver:  resolver,
		publisher: publisher,
		clock:     clock,
		logger:    observability.OrDefault(logger),
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	var (
		result *CreateTaskResult
		events []domain.DomainEvent
	)

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.buildTask(cmd)
		if err != nil {
			return err
		}

		tasks, err := h.taskRepo.FindAll(txCtx)
		if err != nil {
			return err
		}
		res := h.resolver.ResolveNew(txCtx, t, tasks)

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		events = collectEvents(ctx, t, res)
		result = newScheduleResult(t, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, events)
	return result, nil
}

func (h *CreateTaskHandler) buildTask(cmd CreateTaskCommand) (*task.Task, error) {
	priority := value_objects.DefaultPriority
	if cmd.Priority != "" {
		p, err := value_objects.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	var due *value_objects.Date
	if !cmd.NoDueDate {
		d := h.clock.today()
		if cmd.DueDate != nil {
			d = *cmd.DueDate
		}
		due = &d
	}

	t, err := task.NewTask(cmd.Name, priority, due)
	if err != nil {
		return nil, err
	}

	if cmd.Description != "" {
		if err := t.SetDescription(cmd.Description); err != nil {
			return nil, err
		}
	}
	if cmd.Category != "" {
		if err := t.SetCategory(cmd.Category); err != nil {
			return nil, err
		}
	}
	if cmd.Status != "" {
		status, err := task.ParseStatus(cmd.Status)
		if err != nil {
			return nil, err
		}
		if err := t.SetStatus(status); err != nil {
			return nil, err
		}
	}
	if cmd.Bucket != "" {
		bucket, err := value_objects.ParseBucket(cmd.Bucket)
		if err != nil {
			return nil, err
		}
		if err := t.SetBucket(bucket); err != nil {
			return nil, err
		}
	}
	if cmd.EstimatedHours != nil {
		estimate, err := value_objects.NewEstimate(*cmd.EstimatedHours)
		if err != nil {
			return nil, err
		}
		if err := t.SetEstimate(estimate); err != nil {
			return nil, err
		}
	}

	return t, nil
}
