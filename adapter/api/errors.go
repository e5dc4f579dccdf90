package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// APIError represents an API error.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common API errors
var (
	ErrBadRequest = &APIError{
		Status:  http.StatusBadRequest,
		Code:    "bad_request",
		Message: "Invalid request",
	}
	ErrNotFound = &APIError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: "Resource not found",
	}
	ErrInternalServer = &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "Internal server error",
	}
	ErrUnavailable = &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    "unavailable",
		Message: "Handler not configured",
	}
)

var validationErrors = []error{
	task.ErrEmptyName,
	task.ErrEmptyCategory,
	task.ErrInvalidStatus,
	value_objects.ErrInvalidBucket,
	value_objects.ErrInvalidEstimate,
	value_objects.ErrInvalidPriority,
	value_objects.ErrInvalidDate,
}

// classify maps a handler error onto an API error.
func classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, task.ErrTaskNotFound) {
		return &APIError{Status: ErrNotFound.Status, Code: ErrNotFound.Code, Message: err.Error()}
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return &APIError{Status: ErrBadRequest.Status, Code: ErrBadRequest.Code, Message: err.Error()}
		}
	}
	return ErrInternalServer
}

func (s *Server) writeError(c *gin.Context, err error) {
	apiErr := classify(err)
	if apiErr.Status >= http.StatusInternalServerError {
		// requestLogger reports it with the request timing.
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error":   apiErr.Code,
		"message": apiErr.Message,
	})
}

func badRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrBadRequest.Code, Message: message}
}
