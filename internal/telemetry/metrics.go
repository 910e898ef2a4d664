package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the collection of Prometheus metrics the harness reports while
// a suite executes.
type Metrics struct {
	RunsStarted   prometheus.Counter
	RunsCompleted prometheus.Counter
	RunsFailed    prometheus.Counter
	SamplesTaken  prometheus.Counter
	RunDuration   prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates and registers the suite metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.RunsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "benchkit_runs_started_total",
		Help: "Benchmark runs that entered the sampling lifecycle",
	})
	m.RunsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "benchkit_runs_completed_total",
		Help: "Benchmark runs that produced a full sample sequence",
	})
	m.RunsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "benchkit_runs_failed_total",
		Help: "Benchmark runs aborted by a hook failure",
	})
	m.SamplesTaken = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "benchkit_samples_total",
		Help: "Individual timing samples collected",
	})
	m.RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "benchkit_run_duration_seconds",
		Help:    "Wall-clock duration of one benchmark run",
		Buckets: prometheus.DefBuckets,
	})

	m.registry.MustRegister(m.RunsStarted, m.RunsCompleted, m.RunsFailed, m.SamplesTaken, m.RunDuration)
	return m
}

// Handler exposes the metrics for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on addr. Blocks, so callers run it in
// a goroutine.
func (m *Metrics) StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
