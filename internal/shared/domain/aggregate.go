package domain

import "slices"

// AggregateRoot is an entity that records domain events until they are published.
type AggregateRoot interface {
	Entity
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot is embedded by aggregates such as task.Task.
type BaseAggregateRoot struct {
	BaseEntity
	pending []DomainEvent
}

// NewBaseAggregateRoot starts a fresh aggregate with no pending events.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// RehydrateBaseAggregateRoot wraps a stored entity. Loaded aggregates never
// carry pending events.
func RehydrateBaseAggregateRoot(entity BaseEntity) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity}
}

// CloneBaseAggregateRoot copies the identity of a. Pending events stay with a,
// so a discarded edit candidate cannot publish anything.
func CloneBaseAggregateRoot(a BaseAggregateRoot) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: a.BaseEntity}
}

// DomainEvents returns the pending events in the order they were recorded.
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	return slices.Clone(a.pending)
}

// ClearDomainEvents drops the pending events, usually after they were collected
// for publishing.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}

// AddDomainEvent records event as pending.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}
