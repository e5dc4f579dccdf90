package persistence

import (
	"context"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// MemoryTaskRepository keeps the ordered task list in memory and writes a
// full snapshot through its Persister after every mutation. A failed write is
// logged and the in-memory list stays authoritative.
type MemoryTaskRepository struct {
	mu        sync.RWMutex
	tasks     []*task.Task
	persister Persister
	logger    *slog.Logger
}

// NewMemoryTaskRepository creates the repository and loads the persisted snapshot.
// A nil persister keeps tasks in memory only.
func NewMemoryTaskRepository(persister Persister, logger *slog.Logger) *MemoryTaskRepository {
	r := &MemoryTaskRepository{
		persister: persister,
		logger:    observability.OrDefault(logger),
	}
	if persister != nil {
		tasks, ok := persister.Load()
		if !ok {
			r.logger.Warn("starting with an empty task list after load failure")
		}
		r.tasks = tasks
	}
	return r
}

// Save inserts the task at the end of the list or replaces it in place.
func (r *MemoryTaskRepository) Save(ctx context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := t.Clone()
	if i := r.indexOf(t.ID()); i >= 0 {
		r.tasks[i] = stored
	} else {
		r.tasks = append(r.tasks, stored)
	}
	r.persist(ctx)
	return nil
}

// FindByID returns a copy of the task.
func (r *MemoryTaskRepository) FindByID(ctx context.Context, id string) (*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, task.ErrTaskNotFound
	}
	return r.tasks[i].Clone(), nil
}

// FindAll returns copies of all tasks in list order.
func (r *MemoryTaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*task.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Clone())
	}
	return out, nil
}

// Delete removes the task.
func (r *MemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return task.ErrTaskNotFound
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.persist(ctx)
	return nil
}

// Ping reports the repository as healthy; it has no backing connection.
func (r *MemoryTaskRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *MemoryTaskRepository) indexOf(id string) int {
	for i, t := range r.tasks {
		if t.ID() == id {
			return i
		}
	}
	return -1
}

// persist must be called with the write lock held.
func (r *MemoryTaskRepository) persist(ctx context.Context) {
	if r.persister == nil {
		return
	}
	if !r.persister.Save(r.tasks) {
		r.logger.WarnContext(ctx, "task snapshot not persisted; continuing in memory",
			"tasks", len(r.tasks),
		)
	}
}
