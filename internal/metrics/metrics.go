// Package metrics registers the Prometheus instrumentation surface for
// the ITC front-end: cache hit/miss counters, solver iteration
// histograms, bridge call latency, and scheduler queue depth.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the server exposes at
// /metrics.
type Metrics struct {
	CacheLookups    *prometheus.CounterVec
	SolverIterations prometheus.Histogram
	BridgeDuration  *prometheus.HistogramVec
	SchedulerQueue  prometheus.Gauge
}

// New creates and registers every collector. Call once at startup.
func New() *Metrics {
	return &Metrics{
		CacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itc_cache_lookups_total",
				Help: "Cache lookups by namespace and outcome (hit, miss, error).",
			},
			[]string{"namespace", "outcome"},
		),
		SolverIterations: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "itc_solver_iterations",
				Help:    "Number of probe iterations the exposure-time solver ran before terminating.",
				Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			},
		),
		BridgeDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itc_bridge_call_duration_seconds",
				Help:    "Latency of legacy calculator bridge calls.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "outcome"},
		),
		SchedulerQueue: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "itc_scheduler_queue_depth",
				Help: "Current number of jobs queued ahead of the bridge's single worker.",
			},
		),
	}
}

// CacheHit/CacheMiss/CacheError record one C3 lookup outcome.
func (m *Metrics) CacheHit(namespace string)  { m.CacheLookups.WithLabelValues(namespace, "hit").Inc() }
func (m *Metrics) CacheMiss(namespace string) { m.CacheLookups.WithLabelValues(namespace, "miss").Inc() }
func (m *Metrics) CacheError(namespace string) {
	m.CacheLookups.WithLabelValues(namespace, "error").Inc()
}
