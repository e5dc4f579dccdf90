package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoTransaction is returned when Commit or Rollback find no transaction in the context.
var ErrNoTransaction = errors.New("no transaction in context")

type txKey struct{}

// txState records the open transaction and whether this Begin started it.
type txState struct {
	tx    *sql.Tx
	owner bool
}

func withTx(ctx context.Context, tx *sql.Tx, owner bool) context.Context {
	return context.WithValue(ctx, txKey{}, txState{tx: tx, owner: owner})
}

func stateFromContext(ctx context.Context) (txState, bool) {
	state, ok := ctx.Value(txKey{}).(txState)
	if !ok || state.tx == nil {
		return txState{}, false
	}
	return state, true
}

// TxFromContext returns the SQLite transaction opened by a unit of work, if any.
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	state, ok := stateFromContext(ctx)
	return state.tx, ok
}

// SQLiteUnitOfWork makes a task command's read of the day's tasks and its
// write of the resolved candidate one transaction. A nested Begin joins the
// outer transaction and leaves Commit and Rollback to the outer call.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

// NewSQLiteUnitOfWork creates a new SQLiteUnitOfWork.
func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// Begin opens a transaction, or joins the one already in ctx.
func (u *SQLiteUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if tx, ok := TxFromContext(ctx); ok {
		return withTx(ctx, tx, false), nil
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return withTx(ctx, tx, true), nil
}

// Commit commits when this unit opened the transaction.
func (u *SQLiteUnitOfWork) Commit(ctx context.Context) error {
	return u.finish(ctx, (*sql.Tx).Commit)
}

// Rollback rolls back when this unit opened the transaction.
func (u *SQLiteUnitOfWork) Rollback(ctx context.Context) error {
	return u.finish(ctx, (*sql.Tx).Rollback)
}

func (u *SQLiteUnitOfWork) finish(ctx context.Context, end func(*sql.Tx) error) error {
	state, ok := stateFromContext(ctx)
	if !ok {
		return ErrNoTransaction
	}
	if !state.owner {
		return nil
	}
	return end(state.tx)
}
