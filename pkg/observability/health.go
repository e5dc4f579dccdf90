package observability

import (
	"context"
	"maps"
	"sync"
	"time"
)

// HealthStatus is the state of one dependency or of the whole process.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

func (s HealthStatus) rank() int {
	switch s {
	case HealthStatusUnhealthy:
		return 2
	case HealthStatusDegraded:
		return 1
	default:
		return 0
	}
}

// DefaultCheckTimeout bounds a single check.
const DefaultCheckTimeout = 2 * time.Second

// HealthCheckResult is what one check reported.
type HealthCheckResult struct {
	Status    HealthStatus   `json:"status"`
	Message   string         `json:"message,omitempty"`
	LatencyMS int64          `json:"latency_ms"`
	CheckedAt time.Time      `json:"checked_at"`
	Details   map[string]any `json:"details,omitempty"`
}

// HealthChecker probes one dependency.
type HealthChecker func(ctx context.Context) HealthCheckResult

// HealthRegistry runs the checks registered for the task store, the
// persistence breaker and the focus session store.
type HealthRegistry struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	timeout  time.Duration
}

// NewHealthRegistry returns an empty registry using DefaultCheckTimeout.
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{checkers: make(map[string]HealthChecker), timeout: DefaultCheckTimeout}
}

// SetTimeout changes the per-check deadline. Non-positive values are ignored.
func (r *HealthRegistry) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	r.timeout = d
	r.mu.Unlock()
}

// Register adds or replaces the checker for name.
func (r *HealthRegistry) Register(name string, checker HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// Check runs every checker concurrently.
func (r *HealthRegistry) Check(ctx context.Context) map[string]HealthCheckResult {
	r.mu.RLock()
	checkers := maps.Clone(r.checkers)
	timeout := r.timeout
	r.mu.RUnlock()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]HealthCheckResult, len(checkers))
	)
	for name, checker := range checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := runCheck(ctx, timeout, checker)
			mu.Lock()
			results[name] = result
			mu.Unlock()
		}()
	}
	wg.Wait()
	return results
}

// CheckOne runs the checker registered under name.
func (r *HealthRegistry) CheckOne(ctx context.Context, name string) (HealthCheckResult, bool) {
	r.mu.RLock()
	checker, ok := r.checkers[name]
	timeout := r.timeout
	r.mu.RUnlock()

	if !ok {
		return HealthCheckResult{}, false
	}
	return runCheck(ctx, timeout, checker), true
}

// A check that outlives its deadline is reported unhealthy; its goroutine
// finishes in the background.
func runCheck(ctx context.Context, timeout time.Duration, checker HealthChecker) HealthCheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan HealthCheckResult, 1)
	go func() { done <- checker(ctx) }()

	var result HealthCheckResult
	select {
	case result = <-done:
	case <-ctx.Done():
		result = HealthCheckResult{Status: HealthStatusUnhealthy, Message: "check timed out"}
	}
	result.LatencyMS = time.Since(start).Milliseconds()
	result.CheckedAt = time.Now().UTC()
	return result
}

// OverallHealth is the worst status across all checks, with the checks.
type OverallHealth struct {
	Status    HealthStatus                 `json:"status"`
	Timestamp time.Time                    `json:"timestamp"`
	Checks    map[string]HealthCheckResult `json:"checks"`
}

// GetOverallHealth runs all checks and summarizes them. No checks means healthy.
func (r *HealthRegistry) GetOverallHealth(ctx context.Context) OverallHealth {
	checks := r.Check(ctx)
	return OverallHealth{
		Status:    WorstStatus(checks),
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
}

// WorstStatus folds a set of results into one status.
func WorstStatus(results map[string]HealthCheckResult) HealthStatus {
	worst := HealthStatusHealthy
	for _, result := range results {
		if result.Status.rank() > worst.rank() {
			worst = result.Status
		}
	}
	return worst
}

// ProbeChecker turns a ping-style probe into a checker. A failing probe
// reports failStatus.
func ProbeChecker(component string, failStatus HealthStatus, probe func(ctx context.Context) error) HealthChecker {
	return func(ctx context.Context) HealthCheckResult {
		if err := probe(ctx); err != nil {
			return HealthCheckResult{Status: failStatus, Message: component + " unavailable: " + err.Error()}
		}
		return HealthCheckResult{Status: HealthStatusHealthy, Message: component + " reachable"}
	}
}

// StoreHealthChecker reports the task store. Without it nothing works.
func StoreHealthChecker(probe func(ctx context.Context) error) HealthChecker {
	return ProbeChecker("task store", HealthStatusUnhealthy, probe)
}

// RedisHealthChecker reports the focus session store. The clock falls back to
// memory, so a failure only degrades.
func RedisHealthChecker(ping func(ctx context.Context) error) HealthChecker {
	return ProbeChecker("redis", HealthStatusDegraded, ping)
}

// BreakerHealthChecker reports degraded while the persistence breaker is not closed.
func BreakerHealthChecker(state func() string) HealthChecker {
	return func(ctx context.Context) HealthCheckResult {
		current := state()
		result := HealthCheckResult{Status: HealthStatusHealthy, Details: map[string]any{"state": current}}
		if current != "closed" {
			result.Status = HealthStatusDegraded
			result.Message = "persistence breaker " + current
		}
		return result
	}
}
