// Package metrics provides Prometheus metrics for the touchboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// resultRowBuckets covers anything from a single player to a whole league export.
var resultRowBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset
	datasetRows         prometheus.Gauge
	datasetLoadDuration prometheus.Histogram
	datasetLoadErrors   prometheus.Counter
	datasetLoadedUnix   prometheus.Gauge

	// Queries
	queriesTotal         *prometheus.CounterVec
	queryLatency         prometheus.Histogram
	queryResultRows      prometheus.Histogram
	queryInvalidCriteria prometheus.Counter
	chartRenders         prometheus.Counter
	chartRenderErrors    prometheus.Counter
	chartRenderLatency   prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// collectors go to prometheus.DefaultRegisterer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "touchboard",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) opts(name, help string) prometheus.Opts {
	return prometheus.Opts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"dataset_rows", "Number of player records in the loaded dataset")))
	m.datasetLoadDuration = auto.NewHistogram(m.histogramOpts(
		"dataset_load_duration_milliseconds", "Time spent reading and parsing the dataset file",
		prometheus.ExponentialBuckets(1, 2, 14)))
	m.datasetLoadErrors = auto.NewCounter(prometheus.CounterOpts(m.opts(
		"dataset_load_errors_total", "Dataset loads that failed")))
	m.datasetLoadedUnix = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"dataset_loaded_timestamp_seconds", "Unix time of the last successful dataset load")))

	m.queriesTotal = auto.NewCounterVec(prometheus.CounterOpts(m.opts(
		"queries_total", "Filter pipeline runs by outcome")), []string{"outcome"})
	m.queryLatency = auto.NewHistogram(m.histogramOpts(
		"query_latency_milliseconds", "Filter pipeline latency in milliseconds", m.histogramBuckets))
	m.queryResultRows = auto.NewHistogram(m.histogramOpts(
		"query_result_rows", "Rows in the filtered view", resultRowBuckets))
	m.queryInvalidCriteria = auto.NewCounter(prometheus.CounterOpts(m.opts(
		"query_invalid_criteria_total", "Queries rejected because of malformed criteria")))
	m.chartRenders = auto.NewCounter(prometheus.CounterOpts(m.opts(
		"chart_renders_total", "Scatter charts rendered")))
	m.chartRenderErrors = auto.NewCounter(prometheus.CounterOpts(m.opts(
		"chart_render_errors_total", "Scatter chart renders that failed")))
	m.chartRenderLatency = auto.NewHistogram(m.histogramOpts(
		"chart_render_latency_milliseconds", "Scatter chart render latency in milliseconds", m.histogramBuckets))

	httpLabels := []string{"endpoint", "method", "status_code"}
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts(m.opts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method")), httpLabels)
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets), httpLabels)
	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts(m.opts(
		"errors_by_type_total", "Errors by type and severity")), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts(m.opts(
		"errors_by_endpoint_total", "Errors by endpoint, method and type")), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"system_memory_bytes", "Heap bytes allocated")))
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"system_goroutines", "Number of goroutines")))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_milliseconds", "Average GC pause in milliseconds", m.histogramBuckets))
}

// Dataset

// RecordDatasetLoad records a successful load of rows records.
func RecordDatasetLoad(rows int, took time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetLoadDuration.Observe(float64(took.Microseconds()) / 1000)
	globalManager.datasetLoadedUnix.SetToCurrentTime()
}

// RecordDatasetLoadError counts a failed load.
func RecordDatasetLoadError() {
	if globalManager.enabled {
		globalManager.datasetLoadErrors.Inc()
	}
}

// Queries

// RecordQuery records a completed pipeline run.
func RecordQuery(rows int, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.queriesTotal.WithLabelValues("ok").Inc()
	globalManager.queryLatency.Observe(latencyMs)
	globalManager.queryResultRows.Observe(float64(rows))
}

// RecordInvalidCriteria counts a rejected query.
func RecordInvalidCriteria() {
	if !globalManager.enabled {
		return
	}
	globalManager.queriesTotal.WithLabelValues("invalid").Inc()
	globalManager.queryInvalidCriteria.Inc()
}

// RecordChartRender records a chart render attempt.
func RecordChartRender(latencyMs float64, err error) {
	if !globalManager.enabled {
		return
	}
	if err != nil {
		globalManager.chartRenderErrors.Inc()
		return
	}
	globalManager.chartRenders.Inc()
	globalManager.chartRenderLatency.Observe(latencyMs)
}

// HTTP

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint counts an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// System

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the registry backing the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
