package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type txKey struct{}

func TestWithUnitOfWork(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, txKey{}, "tx")

	t.Run("commits after fn succeeds", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)

		var got context.Context
		err := WithUnitOfWork(ctx, uow, func(ctx context.Context) error {
			got = ctx
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, txCtx, got)
		uow.AssertExpectations(t)
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)

		fnErr := errors.New("capacity lookup failed")
		err := WithUnitOfWork(ctx, uow, func(context.Context) error { return fnErr })

		assert.ErrorIs(t, err, fnErr)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("joins rollback failure", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		rbErr := errors.New("connection lost")
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(rbErr)

		fnErr := errors.New("save failed")
		err := WithUnitOfWork(ctx, uow, func(context.Context) error { return fnErr })

		assert.ErrorIs(t, err, fnErr)
		assert.ErrorIs(t, err, rbErr)
	})

	t.Run("does not run fn when begin fails", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		beginErr := errors.New("database is locked")
		uow.On("Begin", ctx).Return(ctx, beginErr)

		called := false
		err := WithUnitOfWork(ctx, uow, func(context.Context) error {
			called = true
			return nil
		})

		assert.ErrorIs(t, err, beginErr)
		assert.Contains(t, err.Error(), "begin unit of work")
		assert.False(t, called)
	})

	t.Run("wraps commit failure", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		commitErr := errors.New("disk full")
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(commitErr)

		err := WithUnitOfWork(ctx, uow, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, commitErr)
		assert.Contains(t, err.Error(), "commit unit of work")
	})

	t.Run("nil unit of work runs fn directly", func(t *testing.T) {
		var got context.Context
		err := WithUnitOfWork(ctx, nil, func(ctx context.Context) error {
			got = ctx
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, ctx, got)
	})
}
