package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/optiflow/pkg/config"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

func testConfig(t *testing.T, store string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		AppEnv:        "test",
		Store:         store,
		DataFile:      filepath.Join(dir, "tasks.json"),
		SQLitePath:    filepath.Join(dir, "optiflow.db"),
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	}
}

func newTestContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	c, err := NewContainer(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewContainer_JSONStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.StoreJSON)
	c := newTestContainer(t, cfg)

	assert.Nil(t, c.DB)
	assert.NotNil(t, c.Persister)
	assert.NotNil(t, c.FocusService)
	assert.Nil(t, c.RedisClient)

	result, err := c.QuickAddHandler.Handle(ctx, commands.QuickAddCommand{Input: "a: Ship release"})
	require.NoError(t, err)
	require.NotEmpty(t, result.TaskID)

	_, err = os.Stat(cfg.DataFile)
	require.NoError(t, err, "snapshot should be written after a mutation")

	reopened := newTestContainer(t, cfg)
	dto, err := reopened.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: result.TaskID})
	require.NoError(t, err)
	assert.Equal(t, "Ship release", dto.Name)
	assert.Equal(t, "a", dto.Priority)
}

func TestNewContainer_SQLiteStore(t *testing.T) {
	ctx := context.Background()
	c := newTestContainer(t, testConfig(t, config.StoreSQLite))

	require.NotNil(t, c.DB)
	assert.Nil(t, c.Persister)

	for _, name := range []string{"first", "second"} {
		_, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{Name: name, Priority: "c"})
		require.NoError(t, err)
	}

	tasks, err := c.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Name)
	assert.Equal(t, "second", tasks[1].Name)

	stats, err := c.PlanningHandler.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
}

func TestNewContainer_UnsupportedStore(t *testing.T) {
	_, err := NewContainer(context.Background(), testConfig(t, "postgres"), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported task store")
}

func TestNewContainer_InvalidRedisFallsBackToMemory(t *testing.T) {
	cfg := testConfig(t, config.StoreJSON)
	cfg.RedisURL = "not a redis url"

	c := newTestContainer(t, cfg)

	assert.Nil(t, c.RedisClient)
	session, err := c.FocusService.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "25:00", session.Clock())
}

func TestNewContainer_Health(t *testing.T) {
	c := newTestContainer(t, testConfig(t, config.StoreJSON))

	health := c.Health.GetOverallHealth(context.Background())

	assert.Equal(t, observability.HealthStatusHealthy, health.Status)
	assert.Contains(t, health.Checks, "store")
	assert.Contains(t, health.Checks, "persistence")
	assert.Contains(t, health.Checks, "snapshot")
}

func TestNewContainer_UnreadableSnapshotDegradesHealth(t *testing.T) {
	cfg := testConfig(t, config.StoreJSON)
	require.NoError(t, os.WriteFile(cfg.DataFile, []byte(`[{"id":"1","name":"precious","priority":"zz"}]`), 0o600))

	c := newTestContainer(t, cfg)

	result, ok := c.Health.CheckOne(context.Background(), "snapshot")
	require.True(t, ok)
	assert.Equal(t, observability.HealthStatusDegraded, result.Status)
	assert.Contains(t, result.Message, "moved to")

	moved, err := filepath.Glob(cfg.DataFile + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, moved, 1)
}
