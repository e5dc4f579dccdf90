package domain

import (
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// PriorityGroup holds the tasks of one ABCDE priority.
type PriorityGroup struct {
	Priority value_objects.Priority
	Tasks    []*task.Task
}

// GroupByPriority groups non-completed tasks by priority A to E, keeping list order.
func GroupByPriority(tasks []*task.Task) []PriorityGroup {
	groups := make([]PriorityGroup, 0, 5)
	index := make(map[value_objects.Priority]int, 5)
	for i, p := range value_objects.Priorities() {
		groups = append(groups, PriorityGroup{Priority: p, Tasks: []*task.Task{}})
		index[p] = i
	}
	for _, t := range ActiveTasks(tasks) {
		if i, ok := index[t.Priority()]; ok {
			groups[i].Tasks = append(groups[i].Tasks, t)
		}
	}
	return groups
}

// BoardColumn is one status column of the Kanban board.
type BoardColumn struct {
	Status task.Status
	Tasks  []*task.Task
}

// BuildBoard groups all tasks by status, keeping list order.
func BuildBoard(tasks []*task.Task) []BoardColumn {
	columns := make([]BoardColumn, 0, 4)
	index := make(map[task.Status]int, 4)
	for i, s := range task.Statuses() {
		columns = append(columns, BoardColumn{Status: s, Tasks: []*task.Task{}})
		index[s] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status()]; ok {
			columns[i].Tasks = append(columns[i].Tasks, t)
		}
	}
	return columns
}

// Stats summarizes the task list by status.
type Stats struct {
	Total      int
	Completed  int
	InProgress int
	Todo       int
	Delegated  int
}

// CompletionRate returns the completed share of all tasks in [0, 1].
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// ComputeStats counts tasks by status.
func ComputeStats(tasks []*task.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status() {
		case task.StatusCompleted:
			s.Completed++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusTodo:
			s.Todo++
		case task.StatusDelegated:
			s.Delegated++
		}
	}
	return s
}
