package task

import (
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/optiflow/internal/shared/domain"
)

var (
	ErrEmptyName     = errors.New("task name cannot be empty")
	ErrEmptyCategory = errors.New("task category cannot be empty")
	ErrTaskNotFound  = errors.New("task not found")
)

// DefaultCategory is the category given to tasks created without one.
const DefaultCategory = "work"

// KnownCategories are the categories offered by the front ends. Other labels are accepted.
var KnownCategories = []string{"work", "personal", "health", "learning"}

// Task represents a unit of work classified by priority and 1-3-5 bucket.
type Task struct {
	domain.BaseAggregateRoot
	name        string
	description string
	category    string
	priority    value_objects.Priority
	status      Status
	bucket      value_objects.Bucket
	dueDate     *value_objects.Date
	estimate    value_objects.Estimate
}

// NewTask creates a new task. The bucket is inferred from the priority.
func NewTask(name string, priority value_objects.Priority, dueDate *value_objects.Date) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !priority.IsValid() {
		return nil, value_objects.ErrInvalidPriority
	}

	estimate, _ := value_objects.NewEstimate(value_objects.DefaultEstimate)

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		name:              name,
		category:          DefaultCategory,
		priority:          priority,
		status:            StatusTodo,
		bucket:            priority.DefaultBucket(),
		dueDate:           copyDate(dueDate),
		estimate:          estimate,
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.name, t.priority.String(), t.bucket.String()))

	return t, nil
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	id string,
	name, description, category string,
	priority value_objects.Priority,
	status Status,
	bucket value_objects.Bucket,
	dueDate *value_objects.Date,
	estimate value_objects.Estimate,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(
			domain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		name:        name,
		description: description,
		category:    category,
		priority:    priority,
		status:      status,
		bucket:      bucket,
		dueDate:     copyDate(dueDate),
		estimate:    estimate,
	}
}

// Getters

func (t *Task) Name() string                     { return t.name }
func (t *Task) Description() string              { return t.description }
func (t *Task) Category() string                 { return t.category }
func (t *Task) Priority() value_objects.Priority { return t.priority }
func (t *Task) Status() Status                   { return t.status }
func (t *Task) Bucket() value_objects.Bucket     { return t.bucket }
func (t *Task) DueDate() *value_objects.Date     { return copyDate(t.dueDate) }
func (t *Task) Estimate() value_objects.Estimate { return t.estimate }
func (t *Task) IsCompleted() bool                { return t.status == StatusCompleted }
func (t *Task) IsInProgress() bool               { return t.status == StatusInProgress }
func (t *Task) HasDueDate() bool                 { return t.dueDate != nil }

// IsDueOn reports whether the task is due exactly on date.
func (t *Task) IsDueOn(date value_objects.Date) bool {
	return t.dueDate != nil && t.dueDate.Equal(date)
}

// IsDueBy reports whether the task is due on or before date.
func (t *Task) IsDueBy(date value_objects.Date) bool {
	return t.dueDate != nil && !t.dueDate.After(date)
}

// SetName updates the task name.
func (t *Task) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	t.name = name
	t.Touch()
	return nil
}

// SetDescription updates the task description.
func (t *Task) SetDescription(description string) error {
	t.description = strings.TrimSpace(description)
	t.Touch()
	return nil
}

// SetCategory updates the grouping label.
func (t *Task) SetCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	t.category = category
	t.Touch()
	return nil
}

// SetPriority updates the task priority. The bucket is left unchanged.
func (t *Task) SetPriority(priority value_objects.Priority) error {
	if !priority.IsValid() {
		return value_objects.ErrInvalidPriority
	}
	t.priority = priority
	t.Touch()
	return nil
}

// SetStatus updates the lifecycle state.
func (t *Task) SetStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	t.status = status
	t.Touch()
	return nil
}

// SetBucket moves the task to another 1-3-5 bucket.
func (t *Task) SetBucket(bucket value_objects.Bucket) error {
	if !bucket.IsValid() {
		return value_objects.ErrInvalidBucket
	}
	t.bucket = bucket
	t.Touch()
	return nil
}

// SetDueDate updates the due date. Nil clears it.
func (t *Task) SetDueDate(dueDate *value_objects.Date) error {
	t.dueDate = copyDate(dueDate)
	t.Touch()
	return nil
}

// SetEstimate updates the estimated effort.
func (t *Task) SetEstimate(estimate value_objects.Estimate) error {
	t.estimate = estimate
	t.Touch()
	return nil
}

// Reschedule moves the due date to date because the original day was full.
func (t *Task) Reschedule(date value_objects.Date) {
	var from value_objects.Date
	if t.dueDate != nil {
		from = *t.dueDate
		if from.Equal(date) {
			return
		}
	}
	t.dueDate = &date
	t.Touch()
	t.AddDomainEvent(NewTaskRescheduled(t.ID(), from, date, t.bucket.String()))
}

// ToggleComplete flips between completed and todo.
func (t *Task) ToggleComplete() {
	if t.IsCompleted() {
		t.status = StatusTodo
		t.Touch()
		t.AddDomainEvent(NewTaskReopened(t.ID()))
		return
	}
	t.status = StatusCompleted
	t.Touch()
	t.AddDomainEvent(NewTaskCompleted(t.ID()))
}

// MarkDeleted records the deletion of the task.
func (t *Task) MarkDeleted() {
	t.AddDomainEvent(NewTaskDeleted(t.ID()))
}

// RecordUpdate records which fields an edit changed.
func (t *Task) RecordUpdate(fields []string) {
	if len(fields) == 0 {
		return
	}
	t.AddDomainEvent(NewTaskUpdated(t.ID(), fields))
}

// Clone returns an independent copy used as an edit candidate.
// The copy carries no pending events.
func (t *Task) Clone() *Task {
	c := *t
	c.BaseAggregateRoot = domain.CloneBaseAggregateRoot(t.BaseAggregateRoot)
	c.dueDate = copyDate(t.dueDate)
	return &c
}

func copyDate(d *value_objects.Date) *value_objects.Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
