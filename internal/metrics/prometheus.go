package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipsum"

// Metrics records benchmark outcomes on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	runs      *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	speedup   *prometheus.GaugeVec
	absError  *prometheus.GaugeVec
	cpu       *prometheus.GaugeVec
	inputSize prometheus.Gauge
	workers   prometheus.Gauge
}

// New creates the metrics and registers them, together with the Go runtime
// and process collectors, on a new registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Summation runs by strategy and outcome.",
		}, []string{"strategy", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a single summation run.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"strategy"}),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "speedup_ratio",
			Help:      "Mean sequential duration divided by mean strategy duration.",
		}, []string{"strategy"}),
		absError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "abs_error",
			Help:      "Absolute difference between the strategy sum and the sequential sum.",
		}, []string{"strategy"}),
		cpu: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_percent",
			Help:      "System-wide CPU utilization while the strategy ran.",
		}, []string{"strategy"}),
		inputSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "input_elements",
			Help:      "Length of the summed array.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Size of the worker pool.",
		}),
	}
	m.registry.MustRegister(
		m.runs, m.duration, m.speedup, m.absError, m.cpu, m.inputSize, m.workers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// SetRunParameters records the input length and worker count.
func (m *Metrics) SetRunParameters(n, workers int) {
	m.inputSize.Set(float64(n))
	m.workers.Set(float64(workers))
}

// RecordRun counts one run of strategy and observes its duration.
// Failed runs are counted but not observed.
func (m *Metrics) RecordRun(strategy string, d time.Duration, err error) {
	if err != nil {
		m.runs.WithLabelValues(strategy, "error").Inc()
		return
	}
	m.runs.WithLabelValues(strategy, "ok").Inc()
	m.duration.WithLabelValues(strategy).Observe(d.Seconds())
}

// RecordOutcome sets the per-strategy gauges once results are analyzed.
func (m *Metrics) RecordOutcome(strategy string, speedup, absError, cpuPercent float64) {
	m.speedup.WithLabelValues(strategy).Set(speedup)
	m.absError.WithLabelValues(strategy).Set(absError)
	m.cpu.WithLabelValues(strategy).Set(cpuPercent)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteToTextfile writes the registry to path in the text format read by
// the node_exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
