package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for the flush engine.
type Metrics struct {
	config MetricsConfig

	// Flush pass metrics
	flushPasses   prometheus.Counter
	flushedUnits  prometheus.Counter
	flushDuration prometheus.Histogram

	// Cycle clear metrics
	clearCycles  prometheus.Counter
	clearedUnits prometheus.Counter

	// Graph size metrics
	graphUnits   prometheus.Gauge
	graphObjects prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		// Return a no-op metrics instance
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	buckets := cfg.DefaultHistogramBuckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		flushPasses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "flush_passes_total",
				Help:      "Total number of flush passes run",
			},
		),
		flushedUnits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "flushed_units_total",
				Help:      "Total number of units marked for update by flush passes",
			},
		),
		flushDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "flush_duration_seconds",
				Help:      "Duration of flush passes in seconds",
				Buckets:   buckets,
			},
		),

		clearCycles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clear_cycles_total",
				Help:      "Total number of cycle clears run",
			},
		),
		clearedUnits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleared_units_total",
				Help:      "Total number of units whose tags were cleared",
			},
		),

		graphUnits: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_units",
				Help:      "Current number of units in the graph",
			},
		),
		graphObjects: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_objects",
				Help:      "Current number of object nodes in the graph",
			},
		),
	}

	registry.MustRegister(
		m.flushPasses,
		m.flushedUnits,
		m.flushDuration,
		m.clearCycles,
		m.clearedUnits,
		m.graphUnits,
		m.graphObjects,
	)

	return m, nil
}

// RecordFlushPass records a completed flush pass.
func (m *Metrics) RecordFlushPass(units int, duration time.Duration) {
	if m.flushPasses == nil {
		return
	}
	m.flushPasses.Inc()
	m.flushedUnits.Add(float64(units))
	m.flushDuration.Observe(duration.Seconds())
}

// RecordClear records a completed cycle clear.
func (m *Metrics) RecordClear(units int) {
	if m.clearCycles == nil {
		return
	}
	m.clearCycles.Inc()
	m.clearedUnits.Add(float64(units))
}

// SetGraphSize records the current graph dimensions.
func (m *Metrics) SetGraphSize(units, objects int) {
	if m.graphUnits == nil {
		return
	}
	m.graphUnits.Set(float64(units))
	m.graphObjects.Set(float64(objects))
}

// Handler returns an HTTP handler exposing the metrics registry, or nil
// when metrics are disabled.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying Prometheus registry, or nil when metrics
// are disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
