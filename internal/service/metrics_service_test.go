package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	metrics := NewMetricsService()

	metrics.ObserveHTTPRequest(http.MethodGet, "/resources/:type", http.StatusOK, 10*time.Millisecond)
	metrics.ObserveUpstream("fetch_collection", http.StatusOK, time.Millisecond)
	metrics.ObserveUpstream("fetch_one", http.StatusNotFound, time.Millisecond)
	metrics.ObserveUpstream("fetch_one", 0, time.Millisecond)
	metrics.LiveSessionOpened()
	metrics.LiveSessionOpened()
	metrics.LiveSessionClosed()

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.RequestsTotal)
	assert.Equal(t, uint64(3), snapshot.UpstreamCalls)
	assert.Equal(t, uint64(2), snapshot.UpstreamFailures)
	assert.Equal(t, int64(1), snapshot.LiveSessions)
	assert.Positive(t, snapshot.Goroutines)
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveFilterRun()
	metrics.ObserveUpstream("fetch_collection", http.StatusBadGateway, time.Millisecond)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "catalog_filter_runs_total 1")
	assert.Contains(t, body, `catalog_backend_failures_total{operation="fetch_collection"} 1`)
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var metrics *MetricsService

	assert.NotPanics(t, func() {
		metrics.ObserveFilterRun()
		metrics.ObserveUpstream("fetch_one", 500, time.Millisecond)
		metrics.LiveSessionOpened()
		_ = metrics.Snapshot()
	})
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
