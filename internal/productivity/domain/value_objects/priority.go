package value_objects

import (
	"errors"
	"strings"
)

// Priority is the ABCDE importance scale, A being the most important.
type Priority int

const (
	PriorityA Priority = iota + 1
	PriorityB
	PriorityC
	PriorityD
	PriorityE
)

// DefaultPriority is used when a task is created without an explicit priority.
const DefaultPriority = PriorityB

var (
	ErrInvalidPriority = errors.New("invalid priority value")
)

var priorityNames = map[Priority]string{
	PriorityA: "a",
	PriorityB: "b",
	PriorityC: "c",
	PriorityD: "d",
	PriorityE: "e",
}

var priorityValues = map[string]Priority{
	"a": PriorityA,
	"b": PriorityB,
	"c": PriorityC,
	"d": PriorityD,
	"e": PriorityE,
}

var priorityLabels = map[Priority]string{
	PriorityA: "A - Most Important",
	PriorityB: "B - Important",
	PriorityC: "C - Nice to Do",
	PriorityD: "D - Delegate",
	PriorityE: "E - Eliminate",
}

// Priorities lists every priority in ascending letter order.
func Priorities() []Priority {
	return []Priority{PriorityA, PriorityB, PriorityC, PriorityD, PriorityE}
}

// ParsePriority creates a Priority from a string.
func ParsePriority(s string) (Priority, error) {
	p, ok := priorityValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidPriority
	}
	return p, nil
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// Label returns the display label used by the ABCDE view.
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return "Unknown"
}

// IsValid returns true if the priority is a valid value.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// IsImportant reports whether the priority counts as important (A or B).
func (p Priority) IsImportant() bool {
	return p == PriorityA || p == PriorityB
}

// DefaultBucket infers the 1-3-5 bucket for a new task of this priority.
func (p Priority) DefaultBucket() Bucket {
	switch p {
	case PriorityA:
		return BucketMajor
	case PriorityB:
		return BucketMedium
	default:
		return BucketSmall
	}
}
