package persistence

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// TaskRecord is the stored shape of a task in the JSON snapshot.
type TaskRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	Bucket         string    `json:"bucket"`
	DueDate        string    `json:"dueDate,omitempty"`
	EstimatedHours float64   `json:"estimatedHours"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToRecord converts a task to its stored shape.
func ToRecord(t *task.Task) TaskRecord {
	r := TaskRecord{
		ID:             t.ID(),
		Name:           t.Name(),
		Description:    t.Description(),
		Category:       t.Category(),
		Priority:       t.Priority().String(),
		Status:         t.Status().String(),
		Bucket:         t.Bucket().String(),
		EstimatedHours: t.Estimate().Hours(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
	if due := t.DueDate(); due != nil {
		r.DueDate = due.String()
	}
	return r
}

// ToRecords converts tasks to their stored shape, keeping order.
func ToRecords(tasks []*task.Task) []TaskRecord {
	records := make([]TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, ToRecord(t))
	}
	return records
}

// ToTask rehydrates the task. Missing category and bucket fall back to defaults.
func (r TaskRecord) ToTask() (*task.Task, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("record has no id")
	}

	priority, err := value_objects.ParsePriority(r.Priority)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", r.ID, err)
	}

	status := task.StatusTodo
	if r.Status != "" {
		status, err = task.ParseStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
	}

	bucket := priority.DefaultBucket()
	if r.Bucket != "" {
		bucket, err = value_objects.ParseBucket(r.Bucket)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
	}

	var due *value_objects.Date
	if r.DueDate != "" {
		d, err := value_objects.ParseDate(r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
		due = &d
	}

	estimate, err := value_objects.NewEstimate(r.EstimatedHours)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", r.ID, err)
	}

	category := r.Category
	if category == "" {
		category = task.DefaultCategory
	}

	return task.RehydrateTask(
		r.ID,
		r.Name, r.Description, category,
		priority, status, bucket, due, estimate,
		r.CreatedAt, r.UpdatedAt,
	), nil
}
