package mcp

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

var errNotConfigured = errors.New("handler not configured")

func parseDate(field, value string) (*value_objects.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := value_objects.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format, use YYYY-MM-DD: %w", field, err)
	}
	return &d, nil
}

func requireID(value string) (string, error) {
	if value == "" {
		return "", errors.New("task_id is required")
	}
	return value, nil
}
