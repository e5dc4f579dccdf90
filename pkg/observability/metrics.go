package observability

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Metric names recorded by OptiFlow.
const (
	MetricOperationTotal    = "optiflow.operation.total"
	MetricOperationDuration = "optiflow.operation.duration"
	MetricOperationErrors   = "optiflow.operation.errors"

	MetricTasksCreated   = "optiflow.tasks.created"
	MetricTasksCompleted = "optiflow.tasks.completed"
	MetricTasksDeleted   = "optiflow.tasks.deleted"

	MetricRollovers        = "planning.rollover.total"
	MetricHorizonExhausted = "planning.horizon_exhausted.total"

	MetricPersistSaveFailed = "persistence.save.failed"

	MetricFocusSessions  = "focus.sessions.completed"
	MetricFocusRemaining = "focus.remaining.seconds"
)

// Metrics records counters, gauges and durations.
type Metrics interface {
	Counter(name string, value int64, tags ...Tag)
	Gauge(name string, value float64, tags ...Tag)
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag is a metric label.
type Tag struct {
	Key   string
	Value string
}

// T creates a new Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) Counter(string, int64, ...Tag)         {}
func (NoopMetrics) Gauge(string, float64, ...Tag)         {}
func (NoopMetrics) Timing(string, time.Duration, ...Tag) {}

// InMemoryMetrics keeps every series in memory. Tests assert against it.
type InMemoryMetrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	m.mu.Lock()
	m.counters[seriesKey(name, tags)] += value
	m.mu.Unlock()
}

func (m *InMemoryMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	m.gauges[seriesKey(name, tags)] = value
	m.mu.Unlock()
}

func (m *InMemoryMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.mu.Lock()
	key := seriesKey(name, tags)
	m.timings[key] = append(m.timings[key], duration)
	m.mu.Unlock()
}

// GetCounter returns the counter for name and tags, in any tag order.
func (m *InMemoryMetrics) GetCounter(name string, tags ...Tag) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[seriesKey(name, tags)]
}

// GetGauge returns the last gauge value.
func (m *InMemoryMetrics) GetGauge(name string, tags ...Tag) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gauges[seriesKey(name, tags)]
}

// GetTimings returns a copy of the recorded durations.
func (m *InMemoryMetrics) GetTimings(name string, tags ...Tag) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.timings[seriesKey(name, tags)]...)
}

// seriesKey renders name{k=v,...} with tags sorted by key.
func seriesKey(name string, tags []Tag) string {
	if len(tags) == 0 {
		return name
	}
	sorted := append([]Tag(nil), tags...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, t := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.Key)
		b.WriteByte('=')
		b.WriteString(t.Value)
	}
	b.WriteByte('}')
	return b.String()
}
