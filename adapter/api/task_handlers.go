package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

type createTaskRequest struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	Priority       string              `json:"priority"`
	Status         string              `json:"status"`
	Bucket         string              `json:"bucket"`
	DueDate        *value_objects.Date `json:"dueDate"`
	NoDueDate      bool                `json:"noDueDate"`
	EstimatedHours *float64            `json:"estimatedHours"`
}

type quickAddRequest struct {
	Input string `json:"input"`
}

type updateTaskRequest struct {
	Name           *string             `json:"name"`
	Description    *string             `json:"description"`
	Category       *string             `json:"category"`
	Priority       *string             `json:"priority"`
	Status         *string             `json:"status"`
	Bucket         *string             `json:"bucket"`
	DueDate        *value_objects.Date `json:"dueDate"`
	ClearDueDate   bool                `json:"clearDueDate"`
	EstimatedHours *float64            `json:"estimatedHours"`
}

// listTasks handles GET /api/v1/tasks
func (s *Server) listTasks(c *gin.Context) {
	if s.app == nil || s.app.ListTasksHandler == nil {
		s.writeError(c, ErrUnavailable)
		return
	}

	query := queries.ListTasksQuery{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Bucket:   c.Query("bucket"),
		Category: c.Query("category"),
		Active:   c.Query("active") == "true",
	}
	due, err := dateParam(c, "due")
	if err != nil {
		s.writeError(c, err)
		return
	}
	query.DueDate = due

	tasks, err := s.app.ListTasksHandler.Handle(c.Request.Context(), query)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// createTask handles POST /api/v1/tasks
func (s *Server) createTask(c *gin.Context) {
	if s.app == nil || s.app.CreateTaskHandler == nil {
		s.writeError(c, ErrUnavailable)
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest(err.Error()))
		return
	}

	result, err := s.app.CreateTaskHandler.Handle(c.Request.Context(), commands.CreateTaskCommand{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Priority:       req.Priority,
		Status:         req.Status,
		Bucket:         req.Bucket,
		DueDate:        req.DueDate,
		NoDueDate:      req.NoDueDate,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// quickAdd handles POST /api/v1/tasks/quick
func (s *Server) quickAdd(c *gin.Context) {
	if s.app == nil || s.app.QuickAddHandler == nil {
		s.writeError(c, ErrUnavailable)
		return
	}

	var req quickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest(err.Error()))
		return
	}

	result, err := s.app.QuickAddHandler.Handle(c.Request.Context(), commands.QuickAddCommand{Input: req.Input})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// getTask handles GET /api/v1/tasks/:id
func (s *Server) getTask(c *gin.Context) {
	if s.app == nil || s.app.GetTaskHandler == nil {
		s.writeError(c, ErrUnavailable)
		return
	}

	t, err := s.app.GetTaskHandler.Handle(c.Request.Context(), queries.GetTaskQuery{TaskID: c.Param("id")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// updateTask handles PATCH /api/v1/tasks/:id
func (s *Server) updateTask(c *gin.Context) {
	if s.app == nil || s.app.UpdateTaskHandler == nil {
		s.writeError(c, ErrUnavailable)
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest(err.Error()))
		return
	}

	result, err := s.app.UpdateTaskHandler.Handle(c.Request.Context(), commands.UpdateTaskCommand{
		TaskID:         c.Param("id"),
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Priority:       req.Priority,
		Status:         req.Status,
		Bucket:         req.Bucket,
		DueDate:        req.DueDate,
		ClearDueDate:   req.ClearDueDate,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// deleteTask handles DELETE /api/v1/tasks/:id
func (s *Server) deleteTask(c *gin.Context) {
	if s.app == nil || s.app.DeleteTaskHandler == nil {
		s.writeError(c, ErrUnavailable)
		return
	}

	if err := s.app.DeleteTaskHandler.Handle(c.Request.Context(), commands.DeleteTaskCommand{TaskID: c.Param("id")}); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// toggleComplete handles POST /api/v1/tasks/:id/toggle
func (s *Server) toggleComplete(c *gin.Context) {
	if s.app == nil || s.app.ToggleCompleteHandler == nil {
		s.writeError(c, ErrUnavailable)
		return
	}

	result, err := s.app.ToggleCompleteHandler.Handle(c.Request.Context(), commands.ToggleCompleteCommand{TaskID: c.Param("id")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func dateParam(c *gin.Context, name string) (*value_objects.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := value_objects.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
