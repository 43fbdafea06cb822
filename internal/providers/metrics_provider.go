package providers

import (
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveStoreDuration(backend, op string, duration time.Duration)
	IncStoreErrors(backend, op string)
	IncSourceFallbacks(backend string)
	SetViewCounts(total, acknowledged, pending int)
	IncJobRuns(job string, ok bool)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	storeDuration   *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	sourceFallbacks *prometheus.CounterVec
	alerts          *prometheus.GaugeVec
	jobRuns         *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveStoreDuration(backend, op string, duration time.Duration) {
	m.storeDuration.WithLabelValues(backend, op).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStoreErrors(backend, op string) {
	m.storeErrors.WithLabelValues(backend, op).Inc()
}

func (m *MetricsProvider) IncSourceFallbacks(backend string) {
	m.sourceFallbacks.WithLabelValues(backend).Inc()
}

func (m *MetricsProvider) SetViewCounts(total, acknowledged, pending int) {
	m.alerts.WithLabelValues("total").Set(float64(total))
	m.alerts.WithLabelValues("acknowledged").Set(float64(acknowledged))
	m.alerts.WithLabelValues("pending").Set(float64(pending))
}

func (m *MetricsProvider) IncJobRuns(job string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}
	return newMetricsProvider(prometheus.DefaultRegisterer)
}

func newMetricsProvider(reg prometheus.Registerer) *MetricsProvider {
	factory := promauto.With(reg)
	return &MetricsProvider{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alerts_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alerts_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "alerts_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "alerts_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		storeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alerts_store_operation_duration_seconds",
			Help:    "Duration of acknowledgment store operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "op"}),

		storeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alerts_store_errors_total",
			Help: "Failed acknowledgment store operations",
		}, []string{"backend", "op"}),

		sourceFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alerts_source_fallbacks_total",
			Help: "Row loads served from the local fallback set after a backend failure",
		}, []string{"backend"}),

		alerts: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "alerts_rows",
			Help: "Alert rows by acknowledgment state",
		}, []string{"state"}),

		jobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alerts_job_runs_total",
			Help: "Scheduled job executions",
		}, []string{"job", "result"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) ObserveStoreDuration(_, _ string, _ time.Duration) {}
func (n *noopMetrics) IncStoreErrors(_, _ string)                        {}
func (n *noopMetrics) IncSourceFallbacks(_ string)                       {}
func (n *noopMetrics) SetViewCounts(_, _, _ int)                         {}
func (n *noopMetrics) IncJobRuns(_ string, _ bool)                       {}
