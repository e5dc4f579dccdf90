package domain

import (
	"time"

	"github.com/google/uuid"
)

// Now is the clock used for entity timestamps and event times.
var Now = func() time.Time { return time.Now().UTC() }

// Entity is anything with a stable identity and audit timestamps.
type Entity interface {
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

// BaseEntity holds the identity of a task or plan aggregate.
type BaseEntity struct {
	id        string
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntity returns an entity with a random UUID created now.
func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{id: uuid.NewString(), createdAt: now, updatedAt: now}
}

// RehydrateBaseEntity restores an entity loaded from a store.
// A zero updatedAt falls back to createdAt.
func RehydrateBaseEntity(id string, createdAt, updatedAt time.Time) BaseEntity {
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return BaseEntity{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

func (e BaseEntity) ID() string           { return e.id }
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// Touch moves updatedAt to the current time. It never goes backwards.
func (e *BaseEntity) Touch() {
	if now := Now(); now.After(e.updatedAt) {
		e.updatedAt = now
	}
}

// SameEntity reports whether a and b share an identity.
func SameEntity(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}
