package services

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/optiflow/internal/planning/domain"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// CapacityGuard runs the rollover resolver for task writes and reports
// rollovers through logs and metrics. Resolution itself never fails.
type CapacityGuard struct {
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewCapacityGuard creates a new CapacityGuard.
func NewCapacityGuard(metrics observability.Metrics, logger *slog.Logger) *CapacityGuard {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &CapacityGuard{
		metrics: metrics,
		logger:  observability.OrDefault(logger),
	}
}

// ResolveNew resolves a task that is about to be created.
func (g *CapacityGuard) ResolveNew(ctx context.Context, candidate *task.Task, tasks []*task.Task) domain.Resolution {
	return g.observe(ctx, candidate, domain.ResolveCapacity(candidate, tasks))
}

// ResolveUpdate resolves an edited copy of stored.
func (g *CapacityGuard) ResolveUpdate(ctx context.Context, stored, candidate *task.Task, tasks []*task.Task) domain.Resolution {
	return g.observe(ctx, candidate, domain.ResolveUpdate(stored, candidate, tasks))
}

func (g *CapacityGuard) observe(ctx context.Context, candidate *task.Task, res domain.Resolution) domain.Resolution {
	if res.Valid {
		return res
	}

	bucket := candidate.Bucket().String()
	g.metrics.Counter(observability.MetricRollovers, 1, observability.T("bucket", bucket))
	g.logger.InfoContext(ctx, "task rolled over",
		"task_id", candidate.ID(),
		"bucket", bucket,
		"requested_date", res.RequestedDate.String(),
		"resolved_date", res.ResolvedDate.String(),
	)

	if res.HorizonExhausted {
		g.metrics.Counter(observability.MetricHorizonExhausted, 1, observability.T("bucket", bucket))
		g.logger.WarnContext(ctx, "no capacity within rollover horizon",
			"task_id", candidate.ID(),
			"bucket", bucket,
			"horizon_days", domain.RolloverHorizonDays,
			"placed_on", res.ResolvedDate.String(),
		)
	}
	return res
}
