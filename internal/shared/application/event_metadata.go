package application

import (
	"github.com/google/uuid"

	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
)

// EventStamper is implemented by pointer events embedding domain.BaseEvent.
type EventStamper interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata returns the metadata shared by all events of one command run.
// The correlation ID comes from the request context and is generated when empty.
func NewEventMetadata(correlationID string) domain.EventMetadata {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	return domain.EventMetadata{
		CorrelationID: correlationID,
		CausationID:   uuid.NewString(),
	}
}

// ApplyEventMetadata stamps metadata on every event that accepts it and
// returns how many events were skipped.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) (skipped int) {
	for _, event := range events {
		stamper, ok := event.(EventStamper)
		if !ok {
			skipped++
			continue
		}
		stamper.SetMetadata(metadata)
	}
	return skipped
}
