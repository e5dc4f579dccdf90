package task

import (
	"errors"
	"strings"
)

var (
	ErrInvalidStatus = errors.New("invalid task status")
)

// Status represents the task lifecycle state.
type Status int

const (
	StatusTodo Status = iota
	StatusInProgress
	StatusCompleted
	StatusDelegated
)

var statusNames = map[Status]string{
	StatusTodo:       "todo",
	StatusInProgress: "inProgress",
	StatusCompleted:  "completed",
	StatusDelegated:  "delegated",
}

var statusValues = map[string]Status{
	"todo":        StatusTodo,
	"inprogress":  StatusInProgress,
	"in_progress": StatusInProgress,
	"completed":   StatusCompleted,
	"delegated":   StatusDelegated,
}

// Statuses lists the statuses in board column order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusCompleted, StatusDelegated}
}

// ParseStatus creates a Status from a string.
func ParseStatus(s string) (Status, error) {
	status, ok := statusValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return StatusTodo, ErrInvalidStatus
	}
	return status, nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the status is a valid value.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}
