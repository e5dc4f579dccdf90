package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// Wildcard subscribes a consumer to every routing key.
const Wildcard = "*"

// ConsumerRegistry routes envelopes to the consumers subscribed to their
// routing key. Wildcard consumers run after the exact matches.
type ConsumerRegistry struct {
	mu     sync.RWMutex
	byKey  map[string][]EventConsumer
	logger *slog.Logger
}

// NewConsumerRegistry returns an empty registry.
func NewConsumerRegistry(logger *slog.Logger) *ConsumerRegistry {
	return &ConsumerRegistry{
		byKey:  make(map[string][]EventConsumer),
		logger: observability.OrDefault(logger),
	}
}

// Register subscribes consumer to each routing key it declares.
func (r *ConsumerRegistry) Register(consumer EventConsumer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range consumer.EventTypes() {
		r.byKey[key] = append(r.byKey[key], consumer)
		r.logger.Debug("consumer subscribed", "routing_key", key)
	}
}

// Consumers returns the consumers for routingKey followed by wildcard consumers.
func (r *ConsumerRegistry) Consumers(routingKey string) []EventConsumer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.byKey[routingKey])
	if routingKey != Wildcard {
		out = append(out, r.byKey[Wildcard]...)
	}
	return out
}

// RoutingKeys lists the subscribed routing keys in sorted order.
func (r *ConsumerRegistry) RoutingKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.byKey))
}

// Len counts subscriptions. A consumer on two keys counts twice.
func (r *ConsumerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, consumers := range r.byKey {
		n += len(consumers)
	}
	return n
}

// Dispatch hands event to every matching consumer. All consumers run even
// when one fails; the failures are joined.
func (r *ConsumerRegistry) Dispatch(ctx context.Context, event *ConsumedEvent) error {
	consumers := r.Consumers(event.RoutingKey)
	if len(consumers) == 0 {
		r.logger.DebugContext(ctx, "no consumers for event", "routing_key", event.RoutingKey)
		return nil
	}

	var errs []error
	for _, consumer := range consumers {
		if err := consumer.Handle(ctx, event); err != nil {
			r.logger.ErrorContext(ctx, "consumer failed",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				observability.ErrorKey, err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", event.RoutingKey, err))
		}
	}
	return errors.Join(errs...)
}
