package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventConsumer reacts to the routing keys it declares, such as
// "productivity.task.created" or Wildcard.
type EventConsumer interface {
	EventTypes() []string
	Handle(ctx context.Context, event *ConsumedEvent) error
}

// ConsumedEvent is the envelope handed to consumers. Payload holds the JSON
// form of the domain event.
type ConsumedEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
	Metadata      EventMetadata   `json:"metadata,omitempty"`
}

// EventMetadata mirrors domain.EventMetadata on the wire.
type EventMetadata struct {
	CorrelationID string `json:"correlation_id,omitempty"`
	CausationID   string `json:"causation_id,omitempty"`
}

// Decode unmarshals the payload into v.
func (e *ConsumedEvent) Decode(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%s: empty payload", e.RoutingKey)
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decode %s: %w", e.RoutingKey, err)
	}
	return nil
}

// ConsumerFunc turns fn into a consumer of the given routing keys.
func ConsumerFunc(fn func(ctx context.Context, event *ConsumedEvent) error, routingKeys ...string) EventConsumer {
	return funcConsumer{fn: fn, keys: routingKeys}
}

type funcConsumer struct {
	fn   func(ctx context.Context, event *ConsumedEvent) error
	keys []string
}

func (c funcConsumer) EventTypes() []string { return c.keys }

func (c funcConsumer) Handle(ctx context.Context, event *ConsumedEvent) error {
	return c.fn(ctx, event)
}
