package queries

import (
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Priority       string    `json:"priority"`
	PriorityLabel  string    `json:"priorityLabel"`
	Status         string    `json:"status"`
	Bucket         string    `json:"bucket"`
	DueDate        string    `json:"dueDate,omitempty"`
	EstimatedHours float64   `json:"estimatedHours"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToTaskDTO converts a task to its transfer shape.
func ToTaskDTO(t *task.Task) TaskDTO {
	dto := TaskDTO{
		ID:             t.ID(),
		Name:           t.Name(),
		Description:    t.Description(),
		Category:       t.Category(),
		Priority:       t.Priority().String(),
		PriorityLabel:  t.Priority().Label(),
		Status:         t.Status().String(),
		Bucket:         t.Bucket().String(),
		EstimatedHours: t.Estimate().Hours(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
	if due := t.DueDate(); due != nil {
		dto.DueDate = due.String()
	}
	return dto
}

// ToTaskDTOs converts tasks, keeping order. The result is never nil.
func ToTaskDTOs(tasks []*task.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, ToTaskDTO(t))
	}
	return dtos
}
