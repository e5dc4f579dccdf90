package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/database/sqlite"
)

func TestRunSQLiteMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	applied, err := RunSQLiteMigrations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, applied)

	var columns int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info('tasks') WHERE name IN ('bucket', 'due_date')`).Scan(&columns)
	require.NoError(t, err)
	assert.Equal(t, 2, columns)

	version, err := SQLiteVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	again, err := RunSQLiteMigrations(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, again)
}
