package persistence

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// BreakerConfig configures the circuit breaker around snapshot saves.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32

	// Timeout is the period of the open state.
	Timeout time.Duration
}

// DefaultBreakerConfig returns the default breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures: 3,
		Timeout:     30 * time.Second,
	}
}

// BreakerPersister guards a SnapshotStore with a circuit breaker. While the
// circuit is open, saves fail fast without touching the store.
type BreakerPersister struct {
	store   SnapshotStore
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewBreakerPersister wraps store.
func NewBreakerPersister(store SnapshotStore, cfg BreakerConfig, logger *slog.Logger, metrics observability.Metrics) *BreakerPersister {
	logger = observability.OrDefault(logger)
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultBreakerConfig().MaxFailures
	}

	p := &BreakerPersister{store: store, logger: logger, metrics: metrics}
	p.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "task-snapshot",
		Timeout: cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return p
}

// Load bypasses the breaker. It runs once at startup.
func (p *BreakerPersister) Load() ([]*task.Task, bool) {
	tasks, err := p.store.LoadSnapshot()
	if err != nil {
		p.logger.Error("failed to load tasks", "error", err)
		return nil, false
	}
	return tasks, true
}

// Save writes the snapshot unless the circuit is open.
func (p *BreakerPersister) Save(tasks []*task.Task) bool {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.store.SaveSnapshot(tasks)
	})
	if err == nil {
		return true
	}

	reason := "store"
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		reason = "circuit_open"
	}
	p.metrics.Counter(observability.MetricPersistSaveFailed, 1, observability.T("reason", reason))
	p.logger.Error("failed to save tasks", "reason", reason, "error", err)
	return false
}

// State returns the breaker state name, for health checks.
func (p *BreakerPersister) State() string {
	return p.breaker.State().String()
}
