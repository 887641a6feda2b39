// Package metrics exposes Prometheus instruments for the HTTP edge and the balance engine.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitbalance"

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Balance computation modes.
const (
	ModeDisplay   = "display"
	ModeBreakdown = "breakdown"
)

// Metrics holds every collector registered by the service.
type Metrics struct {
	registry *prometheus.Registry

	splitAllocations    *prometheus.CounterVec
	balanceComputations *prometheus.CounterVec
	balanceDuration     prometheus.Histogram
	eventsPublished     *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New creates a private registry with Go and process collectors plus the
// service's own instruments.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		splitAllocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_allocations_total",
			Help:      "Split allocations by split type and result.",
		}, []string{"split_type", "result"}),
		balanceComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_computations_total",
			Help:      "Balance computations by presentation mode.",
		}, []string{"mode"}),
		balanceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "balance_computation_seconds",
			Help:      "Time to fetch, aggregate and present a group balance.",
			Buckets:   prometheus.DefBuckets,
		}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Domain events handed to the broker by event type and result.",
		}, []string{"event", "result"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveAllocation counts one split allocation.
func (m *Metrics) ObserveAllocation(splitType string, err error) {
	if m == nil {
		return
	}
	m.splitAllocations.WithLabelValues(splitType, result(err)).Inc()
}

// ObserveBalance counts one balance computation and its latency.
func (m *Metrics) ObserveBalance(mode string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.balanceComputations.WithLabelValues(mode).Inc()
	m.balanceDuration.Observe(elapsed.Seconds())
}

// ObservePublish counts one attempt to publish a domain event.
func (m *Metrics) ObservePublish(event string, err error) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(event, result(err)).Inc()
}

// ObserveRequest counts one HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
