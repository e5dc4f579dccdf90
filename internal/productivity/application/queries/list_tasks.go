package queries

import (
	"context"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// ListTasksQuery contains the parameters for listing tasks.
// Empty filters match everything.
type ListTasksQuery struct {
	Status   string
	Priority string
	Bucket   string
	Category string
	DueDate  *value_objects.Date
	Active   bool // exclude completed tasks
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasksQuery. List order is preserved.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	filter, err := newTaskFilter(query)
	if err != nil {
		return nil, err
	}

	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*task.Task
	for _, t := range tasks {
		if filter.matches(t) {
			matched = append(matched, t)
		}
	}
	return ToTaskDTOs(matched), nil
}

type taskFilter struct {
	status   *task.Status
	priority *value_objects.Priority
	bucket   *value_objects.Bucket
	category string
	dueDate  *value_objects.Date
	active   bool
}

func newTaskFilter(query ListTasksQuery) (taskFilter, error) {
	f := taskFilter{category: query.Category, dueDate: query.DueDate, active: query.Active}

	if query.Status != "" {
		s, err := task.ParseStatus(query.Status)
		if err != nil {
			return f, err
		}
		f.status = &s
	}
	if query.Priority != "" {
		p, err := value_objects.ParsePriority(query.Priority)
		if err != nil {
			return f, err
		}
		f.priority = &p
	}
	if query.Bucket != "" {
		b, err := value_objects.ParseBucket(query.Bucket)
		if err != nil {
			return f, err
		}
		f.bucket = &b
	}
	return f, nil
}

func (f taskFilter) matches(t *task.Task) bool {
	switch {
	case f.active && t.IsCompleted():
		return false
	case f.status != nil && t.Status() != *f.status:
		return false
	case f.priority != nil && t.Priority() != *f.priority:
		return false
	case f.bucket != nil && t.Bucket() != *f.bucket:
		return false
	case f.category != "" && t.Category() != f.category:
		return false
	case f.dueDate != nil && !t.IsDueOn(*f.dueDate):
		return false
	}
	return true
}
