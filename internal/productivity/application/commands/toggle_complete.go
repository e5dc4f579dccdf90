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

// ToggleCompleteCommand flips a task between completed and todo.
type ToggleCompleteCommand struct {
	TaskID string
}

// ToggleCompleteResult reports the new state.
type ToggleCompleteResult struct {
	TaskID    string `json:"taskId"`
	Completed bool   `json:"completed"`
}

// ToggleCompleteHandler handles the ToggleCompleteCommand.
type ToggleCompleteHandler struct {
	taskRepo  task.Repository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewToggleCompleteHandler creates a new ToggleCompleteHandler.
func NewToggleCompleteHandler(taskRepo task.Repository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *ToggleCompleteHandler {
	return &ToggleCompleteHandler{
		taskRepo:  taskRepo,
		uow:       uow,
		publisher: publisher,
		logger:    observability.OrDefault(logger),
	}
}

// Handle executes the ToggleCompleteCommand.
func (h *ToggleCompleteHandler) Handle(ctx context.Context, cmd ToggleCompleteCommand) (*ToggleCompleteResult, error) {
	var (
		result *ToggleCompleteResult
		events []domain.DomainEvent
	)

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}

		t.ToggleComplete()

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		events = collectEvents(ctx, t, planning.Resolution{})
		result = &ToggleCompleteResult{TaskID: t.ID(), Completed: t.IsCompleted()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, events)
	return result, nil
}
