package eventbus

import (
	"context"

	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
)

// Publisher delivers domain events after the state change that raised them is stored.
type Publisher interface {
	Publish(ctx context.Context, events ...domain.DomainEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error { return nil }
