package domain

import (
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// MatrixGroup is a priority group inside a quadrant of the combined matrix.
type MatrixGroup struct {
	Label    string
	Priority *value_objects.Priority
	Tasks    []*task.Task
}

// MatrixQuadrant is one cell of the combined Eisenhower/ABCDE matrix.
type MatrixQuadrant struct {
	Quadrant Quadrant
	Groups   []MatrixGroup
}

// Total returns the number of tasks across all groups.
func (q MatrixQuadrant) Total() int {
	n := 0
	for _, g := range q.Groups {
		n += len(g.Tasks)
	}
	return n
}

// CombinedMatrix is the Eisenhower matrix with ABCDE sub-groups.
type CombinedMatrix struct {
	Quadrants []MatrixQuadrant
}

// Quadrant returns the cell for q.
func (m CombinedMatrix) Quadrant(q Quadrant) MatrixQuadrant {
	for _, mq := range m.Quadrants {
		if mq.Quadrant == q {
			return mq
		}
	}
	return MatrixQuadrant{Quadrant: q}
}

type groupRule struct {
	label    string
	priority *value_objects.Priority
	match    func(value_objects.Priority) bool
}

func onePriority(label string, p value_objects.Priority) groupRule {
	return groupRule{
		label:    label,
		priority: &p,
		match:    func(x value_objects.Priority) bool { return x == p },
	}
}

var matrixLayout = map[Quadrant][]groupRule{
	QuadrantDo: {
		onePriority(value_objects.PriorityA.Label(), value_objects.PriorityA),
		{label: "Other Priorities", match: func(p value_objects.Priority) bool { return p != value_objects.PriorityA }},
	},
	QuadrantDecide: {
		onePriority("A - Future Important", value_objects.PriorityA),
		onePriority(value_objects.PriorityB.Label(), value_objects.PriorityB),
	},
	QuadrantDelegate: {
		onePriority(value_objects.PriorityC.Label(), value_objects.PriorityC),
		onePriority(value_objects.PriorityD.Label(), value_objects.PriorityD),
	},
	QuadrantDelete: {
		onePriority(value_objects.PriorityE.Label(), value_objects.PriorityE),
		{label: "C/D - Low Priority", match: isLowPriority},
	},
}

// BuildCombinedMatrix classifies the non-completed tasks and splits each quadrant by priority.
func BuildCombinedMatrix(tasks []*task.Task, now time.Time) CombinedMatrix {
	byQuadrant := ClassifyAll(ActiveTasks(tasks), now)

	matrix := CombinedMatrix{Quadrants: make([]MatrixQuadrant, 0, 4)}
	for _, q := range Quadrants() {
		groups := matrixLayout[q]
		cell := MatrixQuadrant{Quadrant: q, Groups: make([]MatrixGroup, len(groups))}
		for i, g := range groups {
			cell.Groups[i] = MatrixGroup{Label: g.label, Priority: g.priority, Tasks: []*task.Task{}}
		}
		for _, t := range byQuadrant[q] {
			for i, g := range groups {
				if g.match(t.Priority()) {
					cell.Groups[i].Tasks = append(cell.Groups[i].Tasks, t)
					break
				}
			}
		}
		matrix.Quadrants = append(matrix.Quadrants, cell)
	}
	return matrix
}

// ActiveTasks returns the tasks that are not completed, in list order.
func ActiveTasks(tasks []*task.Task) []*task.Task {
	active := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted() {
			active = append(active, t)
		}
	}
	return active
}
