package persistence

import "github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"

// Persister loads and saves the full ordered task list. Failures are
// reported through the boolean so callers can keep working in memory.
type Persister interface {
	Load() ([]*task.Task, bool)
	Save(tasks []*task.Task) bool
}

// SnapshotStore is a persister that reports failures as errors.
type SnapshotStore interface {
	LoadSnapshot() ([]*task.Task, error)
	SaveSnapshot(tasks []*task.Task) error
}
