// Package metrics exposes report counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bikeshare"

// Metrics owns its registry so tests can build independent instances.
type Metrics struct {
	registry *prometheus.Registry

	renders  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     prometheus.Gauge
}

// New registers the report collectors plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Completed renders by output.",
		}, []string{"output"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "Failed renders by output and error kind.",
		}, []string{"output", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Load, analysis and render time per request.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"output"}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the most recently loaded dataset.",
		}),
	}
	m.registry.MustRegister(
		m.renders, m.failures, m.duration, m.rows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRender records one successful render of output.
func (m *Metrics) ObserveRender(output string, rows int, elapsed time.Duration) {
	m.renders.WithLabelValues(output).Inc()
	m.duration.WithLabelValues(output).Observe(elapsed.Seconds())
	m.rows.Set(float64(rows))
}

// ObserveFailure records one failed render of output.
func (m *Metrics) ObserveFailure(output, kind string, elapsed time.Duration) {
	m.failures.WithLabelValues(output, kind).Inc()
	m.duration.WithLabelValues(output).Observe(elapsed.Seconds())
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
