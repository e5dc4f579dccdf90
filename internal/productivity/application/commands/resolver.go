package commands

import (
	"context"
	"log/slog"
	"time"

	planning "github.com/felixgeelhaar/optiflow/internal/planning/domain"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/optiflow/internal/shared/application"
	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// CapacityResolver places a candidate task on a day with spare bucket capacity.
type CapacityResolver interface {
	ResolveNew(ctx context.Context, candidate *task.Task, tasks []*task.Task) planning.Resolution
	ResolveUpdate(ctx context.Context, stored, candidate *task.Task, tasks []*task.Task) planning.Resolution
}

// Clock returns the current time.
type Clock func() time.Time

func (c Clock) today() value_objects.Date {
	if c == nil {
		return value_objects.DateOf(time.Now())
	}
	return value_objects.DateOf(c())
}

// ScheduleResult describes where a written task ended up.
type ScheduleResult struct {
	TaskID           string              `json:"taskId"`
	RequestedDate    *value_objects.Date `json:"requestedDate,omitempty"`
	DueDate          *value_objects.Date `json:"dueDate,omitempty"`
	RolledOver       bool                `json:"rolledOver"`
	HorizonExhausted bool                `json:"horizonExhausted"`
}

func newScheduleResult(t *task.Task, res planning.Resolution) *ScheduleResult {
	result := &ScheduleResult{
		TaskID:           t.ID(),
		DueDate:          t.DueDate(),
		RolledOver:       res.RolledOver(),
		HorizonExhausted: res.HorizonExhausted,
	}
	if !res.RequestedDate.IsZero() {
		requested := res.RequestedDate
		result.RequestedDate = &requested
	}
	return result
}

// collectEvents takes the pending events of t, adds a HorizonExhausted event
// when the resolver ran out of days, and stamps command metadata on all of them.
func collectEvents(ctx context.Context, t *task.Task, res planning.Resolution) []domain.DomainEvent {
	events := t.DomainEvents()
	if res.HorizonExhausted {
		events = append(events, planning.NewHorizonExhausted(t.ID(), res, t.Bucket().String()))
	}
	sharedApplication.ApplyEventMetadata(events,
		sharedApplication.NewEventMetadata(observability.CorrelationIDFromContext(ctx)))
	t.ClearDomainEvents()
	return events
}

// publish dispatches events after the write has been committed.
func publish(ctx context.Context, publisher eventbus.Publisher, logger *slog.Logger, events []domain.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.ErrorContext(ctx, "failed to publish events", "count", len(events), "error", err)
	}
}
