package domain

import (
	sharedDomain "github.com/felixgeelhaar/optiflow/internal/shared/domain"
)

const (
	AggregateType = "CapacityPlan"

	RoutingKeyHorizonExhausted = "planning.capacity.horizon_exhausted"
)

// HorizonExhausted is emitted when no day within the rollover horizon had room
// and a task was placed past it.
type HorizonExhausted struct {
	sharedDomain.BaseEvent
	Bucket        string `json:"bucket"`
	RequestedDate string `json:"requested_date"`
	PlacedOn      string `json:"placed_on"`
}

// NewHorizonExhausted creates a HorizonExhausted event for the given task.
func NewHorizonExhausted(taskID string, res Resolution, bucket string) *HorizonExhausted {
	return &HorizonExhausted{
		BaseEvent:     sharedDomain.NewBaseEvent(taskID, AggregateType, RoutingKeyHorizonExhausted),
		Bucket:        bucket,
		RequestedDate: res.RequestedDate.String(),
		PlacedOn:      res.ResolvedDate.String(),
	}
}
