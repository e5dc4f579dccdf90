package value_objects

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidEstimate = errors.New("estimated hours must be a non-negative number")
)

// DefaultEstimate is the estimate given to tasks created without one.
const DefaultEstimate = 1.0

// Estimate is the estimated effort of a task in hours.
type Estimate struct {
	hours float64
}

// NewEstimate creates a new Estimate value object.
func NewEstimate(hours float64) (Estimate, error) {
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return Estimate{}, ErrInvalidEstimate
	}
	return Estimate{hours: hours}, nil
}

// Hours returns the estimate in hours.
func (e Estimate) Hours() float64 {
	return e.hours
}

// IsZero returns true if no effort is estimated.
func (e Estimate) IsZero() bool {
	return e.hours == 0
}

// String returns a human-readable representation.
func (e Estimate) String() string {
	return fmt.Sprintf("%gh", e.hours)
}
