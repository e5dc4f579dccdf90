package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
)

type taskCreateInput struct {
	Name           string   `json:"name" jsonschema:"required"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	Status         string   `json:"status,omitempty"`
	Bucket         string   `json:"bucket,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
	NoDueDate      bool     `json:"no_due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

type taskQuickAddInput struct {
	Input string `json:"input" jsonschema:"required"`
}

type taskListInput struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Bucket   string `json:"bucket,omitempty"`
	Category string `json:"category,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
	Active   bool   `json:"active,omitempty"`
}

type taskUpdateInput struct {
	TaskID         string   `json:"task_id" jsonschema:"required"`
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Category       *string  `json:"category,omitempty"`
	Priority       *string  `json:"priority,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Bucket         *string  `json:"bucket,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
	ClearDueDate   bool     `json:"clear_due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

func registerTaskTools(srv *mcp.Server, ts *toolset) error {
	srv.Tool("task.create").
		Description("Create a task. It is due today unless due_date or no_due_date is given, and rolls over to the next day with room when its 1-3-5 bucket is full.").
		Handler(ts.createTask)

	srv.Tool("task.quick_add").
		Description(`Quick add a task due today from a line like "a: Finish report"`).
		Handler(ts.quickAdd)

	srv.Tool("task.list").
		Description("List tasks with filters").
		Handler(ts.listTasks)

	srv.Tool("task.get").
		Description("Get a task by ID or by a unique ID prefix of at least 4 characters").
		Handler(ts.getTask)

	srv.Tool("task.update").
		Description("Update the given fields of a task").
		Handler(ts.updateTask)

	srv.Tool("task.toggle_complete").
		Description("Toggle a task between completed and todo").
		Handler(ts.toggleComplete)

	srv.Tool("task.delete").
		Description("Delete a task").
		Handler(ts.deleteTask)

	return nil
}

func (ts *toolset) createTask(ctx context.Context, input taskCreateInput) (*commands.CreateTaskResult, error) {
	if ts.app.CreateTaskHandler == nil {
		return nil, errNotConfigured
	}
	if input.Name == "" {
		return nil, errors.New("name is required")
	}

	due, err := parseDate("due_date", input.DueDate)
	if err != nil {
		return nil, err
	}

	return ts.app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		Priority:       input.Priority,
		Status:         input.Status,
		Bucket:         input.Bucket,
		DueDate:        due,
		NoDueDate:      input.NoDueDate,
		EstimatedHours: input.EstimatedHours,
	})
}

func (ts *toolset) quickAdd(ctx context.Context, input taskQuickAddInput) (*commands.CreateTaskResult, error) {
	if ts.app.QuickAddHandler == nil {
		return nil, errNotConfigured
	}
	return ts.app.QuickAddHandler.Handle(ctx, commands.QuickAddCommand{Input: input.Input})
}

func (ts *toolset) listTasks(ctx context.Context, input taskListInput) ([]queries.TaskDTO, error) {
	if ts.app.ListTasksHandler == nil {
		return nil, errNotConfigured
	}

	due, err := parseDate("due_date", input.DueDate)
	if err != nil {
		return nil, err
	}

	return ts.app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
		Status:   input.Status,
		Priority: input.Priority,
		Bucket:   input.Bucket,
		Category: input.Category,
		DueDate:  due,
		Active:   input.Active,
	})
}

func (ts *toolset) getTask(ctx context.Context, input taskIDInput) (*queries.TaskDTO, error) {
	if ts.app.GetTaskHandler == nil {
		return nil, errNotConfigured
	}
	id, err := requireID(input.TaskID)
	if err != nil {
		return nil, err
	}
	return ts.app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: id, AllowPrefix: true})
}

func (ts *toolset) updateTask(ctx context.Context, input taskUpdateInput) (*commands.UpdateTaskResult, error) {
	if ts.app.UpdateTaskHandler == nil {
		return nil, errNotConfigured
	}
	id, err := requireID(input.TaskID)
	if err != nil {
		return nil, err
	}
	due, err := parseDate("due_date", input.DueDate)
	if err != nil {
		return nil, err
	}

	return ts.app.UpdateTaskHandler.Handle(ctx, commands.UpdateTaskCommand{
		TaskID:         id,
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		Priority:       input.Priority,
		Status:         input.Status,
		Bucket:         input.Bucket,
		DueDate:        due,
		ClearDueDate:   input.ClearDueDate,
		EstimatedHours: input.EstimatedHours,
	})
}

func (ts *toolset) toggleComplete(ctx context.Context, input taskIDInput) (*commands.ToggleCompleteResult, error) {
	if ts.app.ToggleCompleteHandler == nil {
		return nil, errNotConfigured
	}
	id, err := requireID(input.TaskID)
	if err != nil {
		return nil, err
	}
	return ts.app.ToggleCompleteHandler.Handle(ctx, commands.ToggleCompleteCommand{TaskID: id})
}

func (ts *toolset) deleteTask(ctx context.Context, input taskIDInput) (map[string]any, error) {
	if ts.app.DeleteTaskHandler == nil {
		return nil, errNotConfigured
	}
	id, err := requireID(input.TaskID)
	if err != nil {
		return nil, err
	}
	if err := ts.app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{TaskID: id}); err != nil {
		return nil, err
	}
	return map[string]any{"task_id": id, "deleted": true}, nil
}
