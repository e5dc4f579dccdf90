package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/shared/application"
)

func TestExecutor_UsesDBWithoutTransaction(t *testing.T) {
	db := setupTestDB(t)

	exec := Executor(context.Background(), db)
	assert.Same(t, db, exec)
}

func TestExecutor_UsesTransactionFromContext(t *testing.T) {
	db := setupTestDB(t)

	uow := NewSQLiteUnitOfWork(db)
	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(txCtx) }()

	tx, ok := TxFromContext(txCtx)
	require.True(t, ok)
	assert.Same(t, tx, Executor(txCtx, db))
}

func TestWithUnitOfWork_SQLite(t *testing.T) {
	db := setupTestDB(t)

	uow := NewSQLiteUnitOfWork(db)
	err := application.WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
		_, err := Executor(ctx, db).ExecContext(ctx, `INSERT INTO tasks (id, bucket) VALUES ('t1', 'small')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE bucket = 'small'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLockUnitOfWork_SerializesUnits(t *testing.T) {
	ctx := context.Background()
	uow := NewLockUnitOfWork()

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = uow.Begin(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, uow.Commit(txCtx))

	next, err := uow.Begin(ctx)
	require.NoError(t, err)
	assert.NoError(t, uow.Rollback(next))
}

func TestLockUnitOfWork_NestedBeginJoins(t *testing.T) {
	ctx := context.Background()
	uow := NewLockUnitOfWork()

	outer, err := uow.Begin(ctx)
	require.NoError(t, err)
	inner, err := uow.Begin(outer)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(inner))

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = uow.Begin(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "inner commit must not release the outer lock")

	require.NoError(t, uow.Commit(outer))
	_, err = uow.Begin(ctx)
	assert.NoError(t, err)
}

func TestLockUnitOfWork_NotHeld(t *testing.T) {
	uow := NewLockUnitOfWork()
	assert.ErrorIs(t, uow.Commit(context.Background()), ErrNotHeld)
	assert.ErrorIs(t, uow.Rollback(context.Background()), ErrNotHeld)
}
