package observability

import (
	"context"
	"log/slog"
	"time"
)

// Timer measures one operation. Stop logs the outcome and records the
// operation counters and duration.
type Timer struct {
	ctx       context.Context
	operation string
	start     time.Time
	logger    *slog.Logger
	metrics   Metrics
}

// StartTimer starts timing operation. Either logger or metrics may be nil.
func StartTimer(ctx context.Context, operation string, logger *slog.Logger, metrics Metrics) *Timer {
	return &Timer{
		ctx:       ctx,
		operation: operation,
		start:     time.Now(),
		logger:    logger,
		metrics:   metrics,
	}
}

// Stop records the operation. A non-nil err is logged at ERROR and counted
// in MetricOperationErrors. Extra attrs are added to the log record only.
func (t *Timer) Stop(err error, tags []Tag, attrs ...any) time.Duration {
	duration := time.Since(t.start)

	if t.metrics != nil {
		tags = append(append([]Tag{}, tags...), T("operation", t.operation))
		t.metrics.Timing(MetricOperationDuration, duration, tags...)
		t.metrics.Counter(MetricOperationTotal, 1, tags...)
		if err != nil {
			t.metrics.Counter(MetricOperationErrors, 1, tags...)
		}
	}

	if t.logger != nil {
		attrs = append([]any{"operation", t.operation, DurationKey, duration.Milliseconds()}, attrs...)
		if err != nil {
			t.logger.ErrorContext(t.ctx, "operation failed", append(attrs, ErrorKey, err.Error())...)
		} else {
			t.logger.DebugContext(t.ctx, "operation completed", attrs...)
		}
	}
	return duration
}
