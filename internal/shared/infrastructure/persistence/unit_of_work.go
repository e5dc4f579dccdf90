package persistence

import (
	"context"
	"errors"
)

// ErrNotHeld is returned when Commit or Rollback find no lock taken by Begin in the context.
var ErrNotHeld = errors.New("unit of work lock not held")

type lockKey struct{ u *LockUnitOfWork }

// LockUnitOfWork serializes commands against stores that persist every write
// on their own, such as the in-memory snapshot store. Begin holds the lock
// until Commit or Rollback, so a command's read and its resolved write see no
// other writer in between. A nested Begin joins the held lock.
type LockUnitOfWork struct {
	sem chan struct{}
}

// NewLockUnitOfWork creates a new LockUnitOfWork.
func NewLockUnitOfWork() *LockUnitOfWork {
	return &LockUnitOfWork{sem: make(chan struct{}, 1)}
}

// Begin waits for the lock or for ctx to end.
func (u *LockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if _, held := ctx.Value(lockKey{u}).(bool); held {
		return context.WithValue(ctx, lockKey{u}, false), nil
	}

	select {
	case u.sem <- struct{}{}:
		return context.WithValue(ctx, lockKey{u}, true), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Commit releases the lock when this unit took it.
func (u *LockUnitOfWork) Commit(ctx context.Context) error {
	return u.release(ctx)
}

// Rollback releases the lock when this unit took it. Writes already made stay.
func (u *LockUnitOfWork) Rollback(ctx context.Context) error {
	return u.release(ctx)
}

func (u *LockUnitOfWork) release(ctx context.Context) error {
	owner, ok := ctx.Value(lockKey{u}).(bool)
	if !ok {
		return ErrNotHeld
	}
	if owner {
		<-u.sem
	}
	return nil
}
