// Package metrics exposes Prometheus metrics for inbound gateway requests and
// outbound backend calls.
//
// Metrics:
//   - <ns>_<sub>_requests_total: inbound requests by route, method and status
//   - <ns>_<sub>_request_duration_seconds: inbound request latency by route
//   - <ns>_<sub>_requests_in_flight: inbound requests being served
//   - <ns>_<sub>_backend_requests_total: backend calls by operation and outcome
//   - <ns>_<sub>_backend_request_duration_seconds: backend latency by operation
//   - <ns>_<sub>_failures_total: translated failures by kind
//
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"rag-gateway/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Backend call outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector owns the gateway's Prometheus registry and metrics
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge

	backendRequestsTotal   *prometheus.CounterVec
	backendRequestDuration *prometheus.HistogramVec

	failuresTotal *prometheus.CounterVec
}

// NewCollector creates and registers all metrics. If registry is nil a new
// one is created with the Go and process collectors attached.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	buckets := cfg.DurationBuckets
	if len(buckets) == 0 {
		// answering latency is dominated by retrieval and generation
		buckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}
	}

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of inbound gateway requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of inbound gateway requests in seconds",
				Buckets:   buckets,
			},
			[]string{"route", "method"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_in_flight",
				Help:      "Number of inbound requests currently being served",
			},
		),
		backendRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "backend_requests_total",
				Help:      "Total number of calls to the RAG backend",
			},
			[]string{"operation", "outcome"},
		),
		backendRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "backend_request_duration_seconds",
				Help:      "Duration of calls to the RAG backend in seconds",
				Buckets:   buckets,
			},
			[]string{"operation"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "failures_total",
				Help:      "Total number of failed requests by failure kind",
			},
			[]string{"route", "kind"},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.inFlight,
		c.backendRequestsTotal,
		c.backendRequestDuration,
		c.failuresTotal,
	)

	return c
}

// RecordRequest records a completed inbound request
func (c *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement
func (c *Collector) TrackInFlight() func() {
	if c == nil {
		return func() {}
	}
	c.inFlight.Inc()
	return c.inFlight.Dec
}

// RecordBackendCall records one call to the backend
func (c *Collector) RecordBackendCall(operation string, err error, duration time.Duration) {
	if c == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	c.backendRequestsTotal.WithLabelValues(operation, outcome).Inc()
	c.backendRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFailure records a failure translated on route
func (c *Collector) RecordFailure(route, kind string) {
	if c == nil {
		return
	}
	c.failuresTotal.WithLabelValues(route, kind).Inc()
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the HTTP handler serving the registry in exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
