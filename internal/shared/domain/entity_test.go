package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
)

// pinClock makes domain.Now return the value in *at until the test ends.
func pinClock(t *testing.T, at *time.Time) {
	t.Helper()
	prev := domain.Now
	domain.Now = func() time.Time { return *at }
	t.Cleanup(func() { domain.Now = prev })
}

func TestNewBaseEntity(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)
	pinClock(t, &now)

	a := domain.NewBaseEntity()
	b := domain.NewBaseEntity()

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, now, a.CreatedAt())
	assert.Equal(t, now, a.UpdatedAt())
}

func TestBaseEntity_Touch(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)
	pinClock(t, &now)
	e := domain.NewBaseEntity()

	now = now.Add(time.Minute)
	e.Touch()
	assert.Equal(t, now, e.UpdatedAt())

	now = now.Add(-time.Hour)
	e.Touch()
	assert.Equal(t, now.Add(time.Hour), e.UpdatedAt(), "clock going backwards")
	assert.True(t, e.UpdatedAt().After(e.CreatedAt()))
}

func TestRehydrateBaseEntity(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	e := domain.RehydrateBaseEntity("task-1", created, created.Add(time.Hour))
	assert.Equal(t, "task-1", e.ID())
	assert.Equal(t, created, e.CreatedAt())
	assert.Equal(t, created.Add(time.Hour), e.UpdatedAt())

	legacy := domain.RehydrateBaseEntity("task-2", created, time.Time{})
	assert.Equal(t, created, legacy.UpdatedAt())
}

func TestSameEntity(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	a := domain.RehydrateBaseEntity("same", created, created)
	b := domain.RehydrateBaseEntity("same", created.Add(time.Hour), created.Add(time.Hour))
	c := domain.NewBaseEntity()

	assert.True(t, domain.SameEntity(a, b))
	assert.False(t, domain.SameEntity(a, c))
	assert.False(t, domain.SameEntity(a, nil))
}
