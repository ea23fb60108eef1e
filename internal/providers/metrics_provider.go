package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"mindmate/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncOperationsTotal(operation string, outcome string)
	ObserveOperationDuration(operation string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncWorkflowSubmissions(outcome string)
	IncAggregateFetches(view string, outcome string)
	SetBackendUp(up bool)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	operationsTotal     *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	workflowSubmissions *prometheus.CounterVec
	aggregateFetches    *prometheus.CounterVec
	backendUp           prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncOperationsTotal(operation string, outcome string) {
	m.operationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *MetricsProvider) ObserveOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncWorkflowSubmissions(outcome string) {
	m.workflowSubmissions.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncAggregateFetches(view string, outcome string) {
	m.aggregateFetches.WithLabelValues(view, outcome).Inc()
}

func (m *MetricsProvider) SetBackendUp(up bool) {
	if up {
		m.backendUp.Set(1)
		return
	}
	m.backendUp.Set(0)
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

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindmate_requests_total",
			Help: "Total number of local API requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindmate_request_duration_seconds",
			Help:    "Local API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		operationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindmate_operations_total",
			Help: "Total number of remote operations by outcome",
		}, []string{"operation", "outcome"}),

		operationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindmate_operation_duration_seconds",
			Help:    "Remote operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindmate_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindmate_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		workflowSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindmate_workflow_submissions_total",
			Help: "Mood submissions by final workflow state",
		}, []string{"outcome"}),

		aggregateFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindmate_aggregate_fetches_total",
			Help: "Insight aggregate fetches by view and outcome",
		}, []string{"view", "outcome"}),

		backendUp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mindmate_backend_up",
			Help: "1 when the last backend health check succeeded",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                   {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) IncOperationsTotal(_ string, _ string)              {}
func (n *noopMetrics) ObserveOperationDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                      {}
func (n *noopMetrics) IncCacheMisses()                                    {}
func (n *noopMetrics) IncWorkflowSubmissions(_ string)                    {}
func (n *noopMetrics) IncAggregateFetches(_ string, _ string)             {}
func (n *noopMetrics) SetBackendUp(_ bool)                                {}
