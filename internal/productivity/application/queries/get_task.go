package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
)

// MinIDPrefix is the shortest prefix accepted in place of a full task ID.
const MinIDPrefix = 4

// ErrAmbiguousID is returned when a prefix matches more than one task.
var ErrAmbiguousID = errors.New("task ID prefix is ambiguous")

// GetTaskQuery looks up one task. With AllowPrefix a unique ID prefix of at
// least MinIDPrefix characters is accepted, as printed by the list views.
type GetTaskQuery struct {
	TaskID      string
	AllowPrefix bool
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(taskRepo task.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle executes the GetTaskQuery.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (*TaskDTO, error) {
	id := strings.TrimSpace(query.TaskID)
	t, err := h.taskRepo.FindByID(ctx, id)
	switch {
	case err == nil && t != nil:
	case err != nil && !errors.Is(err, task.ErrTaskNotFound):
		return nil, err
	case query.AllowPrefix && len(id) >= MinIDPrefix:
		if t, err = h.findByPrefix(ctx, id); err != nil {
			return nil, err
		}
	default:
		return nil, task.ErrTaskNotFound
	}

	dto := ToTaskDTO(t)
	return &dto, nil
}

func (h *GetTaskHandler) findByPrefix(ctx context.Context, prefix string) (*task.Task, error) {
	all, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var found *task.Task
	matches := 0
	for _, t := range all {
		if strings.HasPrefix(t.ID(), prefix) {
			found = t
			matches++
		}
	}
	switch matches {
	case 0:
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, prefix)
	case 1:
		return found, nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, prefix, matches)
	}
}
