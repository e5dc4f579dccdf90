package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
)

type planItem struct {
	domain.BaseAggregateRoot
	name string
}

type planItemAdded struct {
	domain.BaseEvent
}

func (p *planItem) add() {
	p.AddDomainEvent(&planItemAdded{
		BaseEvent: domain.NewBaseEvent(p.ID(), "PlanItem", "planning.item.added"),
	})
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	item := &planItem{BaseAggregateRoot: domain.NewBaseAggregateRoot(), name: "write"}
	assert.Empty(t, item.DomainEvents())

	item.add()
	item.add()

	events := item.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, item.ID(), events[0].AggregateID())
	assert.NotEqual(t, events[0].EventID(), events[1].EventID())

	events[0] = nil
	assert.NotNil(t, item.DomainEvents()[0], "returned slice is a copy")

	item.ClearDomainEvents()
	assert.Empty(t, item.DomainEvents())
}

func TestCloneBaseAggregateRoot_KeepsEventsOnOriginal(t *testing.T) {
	item := &planItem{BaseAggregateRoot: domain.NewBaseAggregateRoot()}
	item.add()

	clone := &planItem{BaseAggregateRoot: domain.CloneBaseAggregateRoot(item.BaseAggregateRoot)}
	clone.add()

	assert.Equal(t, item.ID(), clone.ID())
	assert.Equal(t, item.CreatedAt(), clone.CreatedAt())
	assert.Len(t, item.DomainEvents(), 1)
	assert.Len(t, clone.DomainEvents(), 1)
}

func TestRehydrateBaseAggregateRoot(t *testing.T) {
	entity := domain.NewBaseEntity()

	agg := domain.RehydrateBaseAggregateRoot(entity)

	assert.Equal(t, entity.ID(), agg.ID())
	assert.Empty(t, agg.DomainEvents())
}
