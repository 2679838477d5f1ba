package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fallback reasons recorded when a handler substitutes sample data
const (
	ReasonUnavailable = "unavailable"
	ReasonQueryError  = "query_error"
	ReasonEmpty       = "empty"
)

// Metrics holds the Prometheus collectors for a single service process
type Metrics struct {
	service  string
	registry *prometheus.Registry

	httpInFlight  prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	dreamFallback *prometheus.CounterVec
}

// New creates and registers the collectors on a fresh registry
func New(service string) *Metrics {
	m := &Metrics{
		service:  service,
		registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   "dreamcanvas",
				Subsystem:   "http",
				Name:        "inflight_requests",
				Help:        "Current number of in-flight HTTP requests.",
				ConstLabels: prometheus.Labels{"service": service},
			},
		),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dreamcanvas",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"service", "method", "path", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dreamcanvas",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"service", "method", "path"},
		),

		dreamFallback: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dreamcanvas",
				Subsystem: "dream",
				Name:      "fallbacks_total",
				Help:      "Responses served from sample data instead of the store.",
			},
			[]string{"service", "reason"},
		),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.dreamFallback,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncrementInFlight() { m.httpInFlight.Inc() }
func (m *Metrics) DecrementInFlight() { m.httpInFlight.Dec() }

// RecordHTTPRequest records one completed request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(m.service, method, path, status).Inc()
	m.httpDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// RecordFallback counts a response served from sample data. Safe on a nil receiver.
func (m *Metrics) RecordFallback(reason string) {
	if m == nil {
		return
	}
	m.dreamFallback.WithLabelValues(m.service, reason).Inc()
}
