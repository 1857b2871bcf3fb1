package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the portal.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamFailures *prometheus.CounterVec
	filterRuns       prometheus.Counter
	liveSessions     prometheus.Gauge

	requestCount    uint64
	upstreamCount   uint64
	upstreamFailed  uint64
	liveSessionOpen int64
}

// MetricsSnapshot is a lightweight summary for the admin dashboard.
type MetricsSnapshot struct {
	RequestsTotal    uint64 `json:"requests_total"`
	UpstreamCalls    uint64 `json:"upstream_calls"`
	UpstreamFailures uint64 `json:"upstream_failures"`
	LiveSessions     int64  `json:"live_sessions"`
	Goroutines       int    `json:"goroutines"`
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_backend_request_duration_seconds",
		Help:    "Duration of catalog backend reads",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	upstreamFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_backend_failures_total",
		Help: "Catalog backend reads that failed or returned a non-success status",
	}, []string{"operation"})

	filterRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_filter_runs_total",
		Help: "Number of filter recomputations",
	})

	liveSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_live_sessions",
		Help: "Open live listing sessions",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamFailures, filterRuns, liveSessions, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamFailures: upstreamFailures,
		filterRuns:       filterRuns,
		liveSessions:     liveSessions,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
}

// ObserveUpstream records one catalog backend read. A zero status means the
// request never produced a response.
func (m *MetricsService) ObserveUpstream(operation string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(operation, fmt.Sprintf("%d", status)).Observe(duration.Seconds())
	atomic.AddUint64(&m.upstreamCount, 1)
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		m.upstreamFailures.WithLabelValues(operation).Inc()
		atomic.AddUint64(&m.upstreamFailed, 1)
	}
}

// ObserveFilterRun counts one filter recomputation.
func (m *MetricsService) ObserveFilterRun() {
	if m == nil {
		return
	}
	m.filterRuns.Inc()
}

// LiveSessionOpened tracks a websocket listing session.
func (m *MetricsService) LiveSessionOpened() {
	if m == nil {
		return
	}
	m.liveSessions.Inc()
	atomic.AddInt64(&m.liveSessionOpen, 1)
}

// LiveSessionClosed is the counterpart of LiveSessionOpened.
func (m *MetricsService) LiveSessionClosed() {
	if m == nil {
		return
	}
	m.liveSessions.Dec()
	atomic.AddInt64(&m.liveSessionOpen, -1)
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		RequestsTotal:    atomic.LoadUint64(&m.requestCount),
		UpstreamCalls:    atomic.LoadUint64(&m.upstreamCount),
		UpstreamFailures: atomic.LoadUint64(&m.upstreamFailed),
		LiveSessions:     atomic.LoadInt64(&m.liveSessionOpen),
		Goroutines:       runtime.NumGoroutine(),
	}
}
