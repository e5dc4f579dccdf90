package domain

import (
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// Quadrant is an Eisenhower urgency/importance category.
type Quadrant int

const (
	QuadrantDo Quadrant = iota + 1
	QuadrantDecide
	QuadrantDelegate
	QuadrantDelete
)

var quadrantNames = map[Quadrant]string{
	QuadrantDo:       "do",
	QuadrantDecide:   "decide",
	QuadrantDelegate: "delegate",
	QuadrantDelete:   "delete",
}

var quadrantTitles = map[Quadrant]string{
	QuadrantDo:       "Do: Urgent & Important",
	QuadrantDecide:   "Decide: Important but Not Urgent",
	QuadrantDelegate: "Delegate: Urgent but Not Important",
	QuadrantDelete:   "Delete: Not Urgent & Not Important",
}

var quadrantHints = map[Quadrant]string{
	QuadrantDo:       "Take action immediately",
	QuadrantDecide:   "Schedule time for these",
	QuadrantDelegate: "Who can help with these?",
	QuadrantDelete:   "Eliminate or postpone",
}

// Quadrants lists the quadrants in display order.
func Quadrants() []Quadrant {
	return []Quadrant{QuadrantDo, QuadrantDecide, QuadrantDelegate, QuadrantDelete}
}

func (q Quadrant) String() string {
	if name, ok := quadrantNames[q]; ok {
		return name
	}
	return "unknown"
}

// Title returns the display title of the quadrant.
func (q Quadrant) Title() string { return quadrantTitles[q] }

// Hint returns the call to action shown under the title.
func (q Quadrant) Hint() string { return quadrantHints[q] }

// IsUrgentImportant reports whether t belongs in the Do quadrant.
// An in-progress A task counts as urgent regardless of its due date.
func IsUrgentImportant(t *task.Task, now time.Time) bool {
	if t.Priority() != value_objects.PriorityA {
		return false
	}
	return t.IsDueBy(value_objects.DateOf(now)) || t.IsInProgress()
}

// IsImportantNotUrgent reports whether t belongs in the Decide quadrant.
func IsImportantNotUrgent(t *task.Task, now time.Time) bool {
	switch t.Priority() {
	case value_objects.PriorityA:
		return !IsUrgentImportant(t, now)
	case value_objects.PriorityB:
		return true
	default:
		return false
	}
}

// IsUrgentNotImportant reports whether t belongs in the Delegate quadrant.
func IsUrgentNotImportant(t *task.Task, now time.Time) bool {
	return isLowPriority(t.Priority()) && t.IsDueBy(value_objects.DateOf(now))
}

// IsNotUrgentNotImportant reports whether t belongs in the Delete quadrant.
func IsNotUrgentNotImportant(t *task.Task, now time.Time) bool {
	if t.Priority() == value_objects.PriorityE {
		return true
	}
	return isLowPriority(t.Priority()) && !t.IsDueBy(value_objects.DateOf(now))
}

// Classify returns the single quadrant t falls into relative to now.
func Classify(t *task.Task, now time.Time) Quadrant {
	switch {
	case IsUrgentImportant(t, now):
		return QuadrantDo
	case IsImportantNotUrgent(t, now):
		return QuadrantDecide
	case IsUrgentNotImportant(t, now):
		return QuadrantDelegate
	default:
		return QuadrantDelete
	}
}

// ClassifyAll groups tasks by quadrant, keeping list order within each quadrant.
// Completed tasks are classified like any other.
func ClassifyAll(tasks []*task.Task, now time.Time) map[Quadrant][]*task.Task {
	result := make(map[Quadrant][]*task.Task, 4)
	for _, q := range Quadrants() {
		result[q] = []*task.Task{}
	}
	for _, t := range tasks {
		q := Classify(t, now)
		result[q] = append(result[q], t)
	}
	return result
}

func isLowPriority(p value_objects.Priority) bool {
	return p == value_objects.PriorityC || p == value_objects.PriorityD
}
