// Package metrics provides Prometheus metrics for the blocboard standings service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the blocboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Core Business Metrics - report computation throughput and shape
	reportsComputed    prometheus.Counter
	reportErrors       prometheus.Counter
	reportDuration     prometheus.Histogram
	divisionsPerReport prometheus.Histogram
	podiumSize         prometheus.Histogram

	// Fact-source metrics - repository fetch performance per backend
	factFetchLatency *prometheus.HistogramVec
	factFetchErrors  *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "blocboard",
		subsystem:        "standings",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.reportsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_computed_total",
		Help:      "Total number of competition reports computed",
	})

	m.reportErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_errors_total",
		Help:      "Total number of failed report computations",
	})

	m.reportDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_duration_milliseconds",
		Help:      "Histogram of report computation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.divisionsPerReport = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "divisions_per_report",
		Help:      "Number of divisions included in each computed report",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	m.podiumSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "podium_standings_returned",
		Help:      "Number of standings returned per division podium (may exceed the cap on ties)",
		Buckets:   []float64{0, 1, 2, 3, 4, 5, 8, 13},
	})

	m.factFetchLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fact_fetch_latency_milliseconds",
			Help:      "Fact repository fetch latency in milliseconds per query and backend",
			Buckets:   m.histogramBuckets,
		},
		[]string{"query", "backend"},
	)

	m.factFetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fact_fetch_errors_total",
			Help:      "Total number of fact repository fetch failures per query and backend",
		},
		[]string{"query", "backend"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total errors by endpoint, method and type",
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordReportComputed increments the computed-reports counter.
func RecordReportComputed() {
	globalManager.reportsComputed.Inc()
}

// RecordReportError increments the failed-reports counter.
func RecordReportError() {
	globalManager.reportErrors.Inc()
}

// RecordReportDuration records how long a report computation took.
func RecordReportDuration(durationMs float64) {
	globalManager.reportDuration.Observe(durationMs)
}

// RecordDivisionsPerReport records how many divisions a report carried.
func RecordDivisionsPerReport(count int) {
	globalManager.divisionsPerReport.Observe(float64(count))
}

// RecordPodiumSize records the number of standings returned for a division.
func RecordPodiumSize(count int) {
	globalManager.podiumSize.Observe(float64(count))
}

// RecordFactFetchLatency records a fact repository fetch duration.
func RecordFactFetchLatency(query, backend string, latencyMs float64) {
	globalManager.factFetchLatency.WithLabelValues(query, backend).Observe(latencyMs)
}

// RecordFactFetchError records a fact repository fetch failure.
func RecordFactFetchError(query, backend string) {
	globalManager.factFetchErrors.WithLabelValues(query, backend).Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by endpoint and type.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
