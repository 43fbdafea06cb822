package providers

import (
	"testing"
	"time"

	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("GET /alerts", 200)
	m.ObserveRequestDuration("GET /alerts", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveStoreDuration("local", "save", time.Millisecond)
	m.IncStoreErrors("local", "save")
	m.IncSourceFallbacks("remote")
	m.SetViewCounts(8, 2, 6)
	m.IncJobRuns("refresh", true)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Counters(t *testing.T) {
	m := newMetricsProvider(prometheus.NewRegistry())

	m.IncRequestsTotal("GET /alerts", 200)
	m.IncRequestsTotal("GET /alerts", 201)
	m.IncRequestsTotal("GET /alerts", 404)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheMisses()
	m.IncStoreErrors("remote", "save")
	m.IncSourceFallbacks("postgres")
	m.IncJobRuns("export", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET /alerts", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET /alerts", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeErrors.WithLabelValues("remote", "save")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceFallbacks.WithLabelValues("postgres")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("export", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("export", "ok")))
}

func TestMetricsProvider_SetViewCounts(t *testing.T) {
	m := newMetricsProvider(prometheus.NewRegistry())

	m.SetViewCounts(8, 3, 5)
	assert.Equal(t, 8.0, testutil.ToFloat64(m.alerts.WithLabelValues("total")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.alerts.WithLabelValues("acknowledged")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.alerts.WithLabelValues("pending")))

	m.SetViewCounts(8, 4, 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.alerts.WithLabelValues("pending")))
}

func TestMetricsProvider_Histograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newMetricsProvider(reg)

	m.ObserveRequestDuration("GET /alerts", 5*time.Millisecond)
	m.ObserveStoreDuration("postgres", "remove", 100*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "alerts_request_duration_seconds", "alerts_store_operation_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
