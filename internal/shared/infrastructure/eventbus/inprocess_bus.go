package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// InProcessEventBus delivers events synchronously inside the process, one
// envelope at a time. Consumer failures are logged and never reach the
// command that published the event.
type InProcessEventBus struct {
	mu       sync.Mutex
	registry *ConsumerRegistry
	logger   *slog.Logger
}

// NewInProcessEventBus returns a bus with an empty registry.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	logger = observability.OrDefault(logger)
	return &InProcessEventBus{registry: NewConsumerRegistry(logger), logger: logger}
}

// RegisterConsumer subscribes consumer to its routing keys.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Registry exposes the routing table.
func (b *InProcessEventBus) Registry() *ConsumerRegistry {
	return b.registry
}

// Publish implements Publisher. Events without a correlation ID inherit the
// one on ctx.
func (b *InProcessEventBus) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	for _, event := range events {
		envelope, err := NewConsumedEvent(event)
		if err != nil {
			b.logger.ErrorContext(ctx, "dropping event", "routing_key", event.RoutingKey(), observability.ErrorKey, err)
			continue
		}
		if envelope.Metadata.CorrelationID == "" {
			envelope.Metadata.CorrelationID = observability.CorrelationIDFromContext(ctx)
		}
		_ = b.Deliver(ctx, envelope)
	}
	return nil
}

// Deliver dispatches an envelope that was built elsewhere and returns the
// joined consumer errors.
func (b *InProcessEventBus) Deliver(ctx context.Context, envelope *ConsumedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	err := b.registry.Dispatch(ctx, envelope)
	attrs := []any{
		"routing_key", envelope.RoutingKey,
		"event_id", envelope.EventID,
		observability.DurationKey, time.Since(start).Milliseconds(),
	}
	if err != nil {
		b.logger.ErrorContext(ctx, "event dispatch failed", append(attrs, observability.ErrorKey, err)...)
		return err
	}
	b.logger.DebugContext(ctx, "event dispatched", attrs...)
	return nil
}

// NewConsumedEvent wraps event in an envelope with the event as JSON payload.
func NewConsumedEvent(event domain.DomainEvent) (*ConsumedEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.RoutingKey(), err)
	}
	meta := event.Metadata()
	return &ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
		Metadata:      EventMetadata(meta),
	}, nil
}
