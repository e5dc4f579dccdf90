package observability

import (
	"context"

	"github.com/google/uuid"
)

// Attribute keys shared by every OptiFlow log record.
const (
	CorrelationIDKey = "correlation_id"
	RequestIDKey     = "request_id"
	DurationKey      = "duration_ms"
	ErrorKey         = "error"
)

type (
	correlationIDKey struct{}
	requestIDKey     struct{}
)

// WithCorrelationID tags ctx with the id of one CLI command or MCP call.
// An empty id gets a fresh UUID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, orNewID(id))
}

// CorrelationIDFromContext returns the correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, correlationIDKey{})
}

// WithRequestID tags ctx with the id of one HTTP request.
// An empty id gets a fresh UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, orNewID(id))
}

// RequestIDFromContext returns the request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey{})
}

func orNewID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func stringValue(ctx context.Context, key any) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
