package commands

import (
	"context"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
)

// QuickAddCommand is a one-line task entry such as "a: Finish report".
type QuickAddCommand struct {
	Input string
}

// QuickAddHandler parses the entry and creates the task due today.
type QuickAddHandler struct {
	create *CreateTaskHandler
}

// NewQuickAddHandler creates a new QuickAddHandler.
func NewQuickAddHandler(create *CreateTaskHandler) *QuickAddHandler {
	return &QuickAddHandler{create: create}
}

// Handle executes the QuickAddCommand.
func (h *QuickAddHandler) Handle(ctx context.Context, cmd QuickAddCommand) (*CreateTaskResult, error) {
	parsed, err := task.ParseQuickAdd(cmd.Input)
	if err != nil {
		return nil, err
	}
	return h.create.Handle(ctx, CreateTaskCommand{
		Name:     parsed.Name,
		Priority: parsed.Priority.String(),
	})
}
