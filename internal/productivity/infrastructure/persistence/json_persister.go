package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// ErrSnapshotUnreadable is returned by saves after a snapshot could be
// neither loaded nor moved aside. The file is left untouched.
var ErrSnapshotUnreadable = errors.New("task snapshot unreadable")

// JSONFilePersister stores the task list as a single JSON array. A snapshot
// that fails to load is renamed to <path>.corrupt-<timestamp> before anything
// can overwrite it.
type JSONFilePersister struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex

	movedTo string
	sealed  error
}

// NewJSONFilePersister creates a persister for the file at path.
func NewJSONFilePersister(path string, logger *slog.Logger) *JSONFilePersister {
	return &JSONFilePersister{path: path, logger: observability.OrDefault(logger)}
}

// Path returns the snapshot file path.
func (p *JSONFilePersister) Path() string {
	return p.path
}

// LoadSnapshot reads the snapshot. A missing file is an empty list.
func (p *JSONFilePersister) LoadSnapshot() ([]*task.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tasks, err := p.read()
	if err != nil {
		return nil, p.setAside(err)
	}
	return tasks, nil
}

func (p *JSONFilePersister) read() ([]*task.Task, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []TaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	tasks := make([]*task.Task, 0, len(records))
	for _, r := range records {
		t, err := r.ToTask()
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot record: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// setAside moves the unreadable snapshot out of the way. When that fails,
// saves are refused so the file survives for manual recovery.
func (p *JSONFilePersister) setAside(loadErr error) error {
	dest := fmt.Sprintf("%s.corrupt-%s", p.path, time.Now().UTC().Format("20060102T150405Z"))
	if err := os.Rename(p.path, dest); err != nil {
		p.sealed = fmt.Errorf("%w: %w", ErrSnapshotUnreadable, loadErr)
		return errors.Join(loadErr, fmt.Errorf("set aside snapshot: %w", err))
	}
	p.movedTo = dest
	p.logger.Warn("unreadable task snapshot moved aside", "path", p.path, "moved_to", dest)
	return fmt.Errorf("%w (moved to %s)", loadErr, dest)
}

// Check reports a snapshot that was moved aside or that blocks saves.
func (p *JSONFilePersister) Check(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.sealed != nil:
		return p.sealed
	case p.movedTo != "":
		return fmt.Errorf("previous snapshot was unreadable and moved to %s", p.movedTo)
	}
	return nil
}

// SaveSnapshot replaces the file atomically through a temp file and rename.
func (p *JSONFilePersister) SaveSnapshot(tasks []*task.Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sealed != nil {
		return p.sealed
	}

	data, err := json.MarshalIndent(ToRecords(tasks), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Load implements Persister.
func (p *JSONFilePersister) Load() ([]*task.Task, bool) {
	tasks, err := p.LoadSnapshot()
	if err != nil {
		p.logger.Error("failed to load tasks", "path", p.path, "error", err)
		return nil, false
	}
	return tasks, true
}

// Save implements Persister.
func (p *JSONFilePersister) Save(tasks []*task.Task) bool {
	if err := p.SaveSnapshot(tasks); err != nil {
		p.logger.Error("failed to save tasks", "path", p.path, "error", err)
		return false
	}
	return true
}
