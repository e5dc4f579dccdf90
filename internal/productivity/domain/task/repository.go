package task

import (
	"context"
)

// Repository defines the interface for task persistence.
// FindAll returns tasks in list order: insertion order, with saves of an
// existing task keeping its position.
type Repository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	Delete(ctx context.Context, id string) error
}
