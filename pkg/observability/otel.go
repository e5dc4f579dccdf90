package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics records metrics through an OpenTelemetry meter.
// Instruments are created lazily and cached by name.
type OTelMetrics struct {
	meter metric.Meter

	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
	histograms map[string]metric.Float64Histogram
}

// NewOTelMetrics creates metrics backed by meter.
func NewOTelMetrics(meter metric.Meter) *OTelMetrics {
	return &OTelMetrics{
		meter:      meter,
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

// NewGlobalOTelMetrics creates metrics backed by the global meter provider.
func NewGlobalOTelMetrics(scope string) *OTelMetrics {
	return NewOTelMetrics(otel.Meter(scope))
}

func (m *OTelMetrics) Counter(name string, value int64, tags ...Tag) {
	m.mu.Lock()
	c, ok := m.counters[name]
	if !ok {
		var err error
		if c, err = m.meter.Int64Counter(name); err != nil {
			m.mu.Unlock()
			otel.Handle(err)
			return
		}
		m.counters[name] = c
	}
	m.mu.Unlock()
	c.Add(context.Background(), value, metric.WithAttributes(attributes(tags)...))
}

func (m *OTelMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	g, ok := m.gauges[name]
	if !ok {
		var err error
		if g, err = m.meter.Float64Gauge(name); err != nil {
			m.mu.Unlock()
			otel.Handle(err)
			return
		}
		m.gauges[name] = g
	}
	m.mu.Unlock()
	g.Record(context.Background(), value, metric.WithAttributes(attributes(tags)...))
}

func (m *OTelMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	h, err := m.histogram(name, "ms")
	if err != nil {
		otel.Handle(err)
		return
	}
	ms := float64(duration) / float64(time.Millisecond)
	h.Record(context.Background(), ms, metric.WithAttributes(attributes(tags)...))
}

func (m *OTelMetrics) histogram(name, unit string) (metric.Float64Histogram, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.histograms[name]; ok {
		return h, nil
	}
	h, err := m.meter.Float64Histogram(name, metric.WithUnit(unit))
	if err != nil {
		return nil, err
	}
	m.histograms[name] = h
	return h, nil
}

func attributes(tags []Tag) []attribute.KeyValue {
	if len(tags) == 0 {
		return nil
	}
	kv := make([]attribute.KeyValue, len(tags))
	for i, t := range tags {
		kv[i] = attribute.String(t.Key, t.Value)
	}
	return kv
}
