package commands

import (
	"context"
	"log/slog"

	planning "github.com/felixgeelhaar/optiflow/internal/planning/domain"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/optiflow/internal/shared/application"
	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// DeleteTaskCommand contains the data needed to delete a task.
type DeleteTaskCommand struct {
	TaskID string
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	taskRepo  task.Repository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(taskRepo task.Repository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		taskRepo:  taskRepo,
		uow:       uow,
		publisher: publisher,
		logger:    observability.OrDefault(logger),
	}
}

// Handle executes the DeleteTaskCommand.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	var events []domain.DomainEvent

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}

		if err := h.taskRepo.Delete(txCtx, t.ID()); err != nil {
			return err
		}

		t.MarkDeleted()
		events = collectEvents(ctx, t, planning.Resolution{})
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, h.publisher, h.logger, events)
	return nil
}
