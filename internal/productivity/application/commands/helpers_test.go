package commands

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/planning/application/services"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/optiflow/internal/productivity/infrastructure/persistence"
	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/persistence"
)

var (
	fixedNow = time.Date(2024, time.May, 10, 9, 0, 0, 0, time.Local)
	today    = value_objects.DateOf(fixedNow)
)

func fixedClock() time.Time { return fixedNow }

// mockTaskRepo is a mock implementation of task.Repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindAll(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) routingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.RoutingKey())
	}
	return keys
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type fixture struct {
	repo      *persistence.MemoryTaskRepository
	publisher *recordingPublisher
	create    *CreateTaskHandler
	update    *UpdateTaskHandler
	toggle    *ToggleCompleteHandler
	delete    *DeleteTaskHandler
	quickAdd  *QuickAddHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := persistence.NewMemoryTaskRepository(nil, nil)
	uow := sharedPersistence.NewLockUnitOfWork()
	guard := services.NewCapacityGuard(nil, nil)
	pub := &recordingPublisher{}

	create := NewCreateTaskHandler(repo, uow, guard, pub, fixedClock, nil)
	return &fixture{
		repo:      repo,
		publisher: pub,
		create:    create,
		update:    NewUpdateTaskHandler(repo, uow, guard, pub, nil),
		toggle:    NewToggleCompleteHandler(repo, uow, pub, nil),
		delete:    NewDeleteTaskHandler(repo, uow, pub, nil),
		quickAdd:  NewQuickAddHandler(create),
	}
}

func (f *fixture) mustCreate(t *testing.T, cmd CreateTaskCommand) *CreateTaskResult {
	t.Helper()
	result, err := f.create.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return result
}

func (f *fixture) mustFind(t *testing.T, id string) *task.Task {
	t.Helper()
	found, err := f.repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return found
}

func ptr[T any](v T) *T { return &v }
