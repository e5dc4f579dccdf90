package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

func TestJSONFilePersister_MissingFileIsEmpty(t *testing.T) {
	p := NewJSONFilePersister(filepath.Join(t.TempDir(), "tasks.json"), nil)

	tasks, ok := p.Load()
	assert.True(t, ok)
	assert.Empty(t, tasks)
}

func TestJSONFilePersister_SaveAndLoadKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	p := NewJSONFilePersister(path, nil)

	in := []*task.Task{
		newTestTask(t, "first", value_objects.PriorityB),
		newTestTask(t, "second", value_objects.PriorityA),
		newTestTask(t, "third", value_objects.PriorityE),
	}
	require.True(t, p.Save(in))
	assert.FileExists(t, path)

	out, ok := p.Load()
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second", "third"}, names(out))
	assert.Equal(t, in[1].ID(), out[1].ID())
}

func TestJSONFilePersister_CorruptFileIsMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	p := NewJSONFilePersister(path, nil)
	require.NoError(t, p.Check(context.Background()))

	tasks, ok := p.Load()
	assert.False(t, ok)
	assert.Nil(t, tasks)
	assert.NoFileExists(t, path)

	moved, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, moved, 1)
	data, err := os.ReadFile(moved[0])
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))

	assert.ErrorContains(t, p.Check(context.Background()), "moved to")
	assert.True(t, p.Save([]*task.Task{newTestTask(t, "fresh", value_objects.PriorityA)}))
}

func TestJSONFilePersister_UnmovableSnapshotBlocksSaves(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not apply to root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	corrupt := []byte(`[{"id":"1","name":"precious","priority":"zz"}]`)
	require.NoError(t, os.WriteFile(path, corrupt, 0o600))
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	p := NewJSONFilePersister(path, nil)
	_, err := p.LoadSnapshot()
	require.Error(t, err)

	assert.ErrorIs(t, p.SaveSnapshot(nil), ErrSnapshotUnreadable)
	assert.ErrorIs(t, p.Check(context.Background()), ErrSnapshotUnreadable)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, data)
}

func TestJSONFilePersister_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// The parent "directory" is a regular file, so the write must fail.
	p := NewJSONFilePersister(filepath.Join(blocker, "tasks.json"), nil)

	assert.False(t, p.Save([]*task.Task{newTestTask(t, "x", value_objects.PriorityA)}))
}
