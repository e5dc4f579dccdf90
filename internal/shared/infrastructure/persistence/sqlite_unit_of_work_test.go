package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE tasks (id TEXT PRIMARY KEY, bucket TEXT NOT NULL, due_date TEXT)`)
	require.NoError(t, err)
	return db
}

func countTasks(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	return n
}

func insertTask(ctx context.Context, db *sql.DB, id string) error {
	_, err := Executor(ctx, db).ExecContext(ctx,
		`INSERT INTO tasks (id, bucket, due_date) VALUES (?, 'major', '2024-05-10')`, id)
	return err
}

func TestSQLiteUnitOfWork_CommitPersists(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)

	tx, ok := TxFromContext(txCtx)
	require.True(t, ok)
	assert.NotNil(t, tx)

	require.NoError(t, insertTask(txCtx, db, "t1"))
	require.NoError(t, uow.Commit(txCtx))
	assert.Equal(t, 1, countTasks(t, db))
}

func TestSQLiteUnitOfWork_RollbackDiscards(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, insertTask(txCtx, db, "t1"))
	require.NoError(t, uow.Rollback(txCtx))

	assert.Equal(t, 0, countTasks(t, db))
}

func TestSQLiteUnitOfWork_NestedBeginJoinsOuter(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	outerCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	innerCtx, err := uow.Begin(outerCtx)
	require.NoError(t, err)

	outerTx, _ := TxFromContext(outerCtx)
	innerTx, _ := TxFromContext(innerCtx)
	assert.Same(t, outerTx, innerTx)

	require.NoError(t, insertTask(innerCtx, db, "t1"))

	// The inner commit leaves the transaction open for the outer unit.
	require.NoError(t, uow.Commit(innerCtx))
	require.NoError(t, insertTask(outerCtx, db, "t2"))
	require.NoError(t, uow.Commit(outerCtx))

	assert.Equal(t, 2, countTasks(t, db))
}

func TestSQLiteUnitOfWork_InnerRollbackIsDeferredToOuter(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	outerCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	innerCtx, err := uow.Begin(outerCtx)
	require.NoError(t, err)

	require.NoError(t, insertTask(innerCtx, db, "t1"))
	require.NoError(t, uow.Rollback(innerCtx))
	require.NoError(t, uow.Rollback(outerCtx))

	assert.Equal(t, 0, countTasks(t, db))
}

func TestSQLiteUnitOfWork_NoTransaction(t *testing.T) {
	uow := NewSQLiteUnitOfWork(setupTestDB(t))
	ctx := context.Background()

	assert.ErrorIs(t, uow.Commit(ctx), ErrNoTransaction)
	assert.ErrorIs(t, uow.Rollback(ctx), ErrNoTransaction)

	_, ok := TxFromContext(withTx(ctx, nil, true))
	assert.False(t, ok)
}

func TestSQLiteUnitOfWork_BeginOnClosedDB(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Close())

	_, err := NewSQLiteUnitOfWork(db).Begin(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
}

func TestSQLiteUnitOfWork_DuplicateInsertRollsBack(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, insertTask(txCtx, db, "t1"))

	err = insertTask(txCtx, db, "t1")
	require.Error(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	assert.Equal(t, 0, countTasks(t, db))
	assert.False(t, errors.Is(err, ErrNoTransaction))
}
