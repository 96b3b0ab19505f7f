package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the chart service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Pipeline Metrics - what the charts are made of
	shotsLoaded     *prometheus.CounterVec
	shotsDuplicate  prometheus.Counter
	shotsClassified *prometheus.CounterVec
	zonesJoined     prometheus.Counter
	zonesDropped    *prometheus.CounterVec
	chartsBuilt     prometheus.Counter
	chartsEmpty     prometheus.Counter
	chartCells      prometheus.Histogram
	chartClampLimit prometheus.Gauge
	stageLatency    *prometheus.HistogramVec
	chartsRendered  *prometheus.CounterVec
	textfileWrites  prometheus.Counter
	textfileErrors  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Queue Metrics - batch job backlog
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueueRate       prometheus.Counter
	queueDequeueRate       prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Worker Metrics - batch processing
	workerActiveCount       prometheus.Gauge
	workerJobsProcessed     prometheus.Counter
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "courtzones",
		subsystem:        "charts",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.shotsLoaded = auto.NewCounterVec(
		m.counterOpts("shots_loaded_total", "Shot and baseline rows read, by source format"),
		[]string{"source"},
	)
	m.shotsDuplicate = auto.NewCounter(m.counterOpts("shots_duplicate_total", "Shots dropped while merging loads"))
	m.shotsClassified = auto.NewCounterVec(
		m.counterOpts("shots_classified_total", "Subject shots classified, by zone"),
		[]string{"zone"},
	)
	m.zonesJoined = auto.NewCounter(m.counterOpts("zones_joined_total", "Zones present for both subject and baseline"))
	m.zonesDropped = auto.NewCounterVec(
		m.counterOpts("zones_dropped_total", "Zones dropped by the join, by the side they were found on"),
		[]string{"side"},
	)
	m.chartsBuilt = auto.NewCounter(m.counterOpts("built_total", "Charts built"))
	m.chartsEmpty = auto.NewCounter(m.counterOpts("empty_total", "Charts whose join produced no zones"))
	m.chartCells = auto.NewHistogram(m.histogramOpts("cells", "Occupied hex cells per chart",
		[]float64{0, 10, 25, 50, 100, 200, 400, 800}))
	m.chartClampLimit = auto.NewGauge(m.gaugeOpts("clamp_limit", "Clamp limit of the most recent chart"))
	m.stageLatency = auto.NewHistogramVec(
		m.histogramOpts("stage_latency_milliseconds", "Pipeline stage latency in milliseconds", m.histogramBuckets),
		[]string{"stage"},
	)
	m.chartsRendered = auto.NewCounterVec(
		m.counterOpts("rendered_total", "Charts rendered, by output format"),
		[]string{"format"},
	)
	m.textfileWrites = auto.NewCounter(m.counterOpts("textfile_writes_total", "Metric textfile snapshots written"))
	m.textfileErrors = auto.NewCounter(m.counterOpts("textfile_errors_total", "Metric textfile snapshots that failed"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of queued chart jobs"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum number of queued chart jobs"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue size over capacity"))
	m.queueEnqueueRate = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Chart jobs enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Chart jobs dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Chart jobs rejected by the queue"))
	m.queueProcessingLatency = auto.NewHistogram(
		m.histogramOpts("queue_processing_latency_milliseconds", "Enqueue latency in milliseconds", m.histogramBuckets),
	)

	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Workers in the batch pool"))
	m.workerJobsProcessed = auto.NewCounter(m.counterOpts("worker_jobs_processed_total", "Chart jobs completed by workers"))
	m.workerProcessingLatency = auto.NewHistogram(
		m.histogramOpts("worker_processing_latency_milliseconds", "Chart job latency in milliseconds", m.histogramBuckets),
	)
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Chart jobs that failed"))

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// Pipeline Metrics Functions.

// RecordShotsLoaded counts rows read from a source format.
func RecordShotsLoaded(source string, n int) {
	globalManager.shotsLoaded.WithLabelValues(source).Add(float64(n))
}

// RecordShotsDuplicate counts shots dropped as duplicates.
func RecordShotsDuplicate(n int) {
	globalManager.shotsDuplicate.Add(float64(n))
}

// RecordShotClassified counts one subject shot in zone.
func RecordShotClassified(zone string) {
	globalManager.shotsClassified.WithLabelValues(zone).Inc()
}

// RecordZonesJoined counts zones that survived the join.
func RecordZonesJoined(n int) {
	globalManager.zonesJoined.Add(float64(n))
}

// RecordZonesDropped counts zones found only on side ("subject" or "baseline").
func RecordZonesDropped(side string, n int) {
	globalManager.zonesDropped.WithLabelValues(side).Add(float64(n))
}

// RecordChartBuilt records a finished chart.
func RecordChartBuilt(cells int, clampLimit float64) {
	globalManager.chartsBuilt.Inc()
	globalManager.chartCells.Observe(float64(cells))
	globalManager.chartClampLimit.Set(clampLimit)
}

// RecordChartEmpty counts a chart with no joined zones.
func RecordChartEmpty() {
	globalManager.chartsEmpty.Inc()
}

// RecordStageLatency records the latency of one pipeline stage.
func RecordStageLatency(stage string, latencyMs float64) {
	globalManager.stageLatency.WithLabelValues(stage).Observe(latencyMs)
}

// RecordChartRendered counts a chart rendered to format.
func RecordChartRendered(format string) {
	globalManager.chartsRendered.WithLabelValues(format).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueProcessingLatency records queue processing latency.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// Worker Metrics Functions.

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerJobProcessed increments the completed job counter.
func RecordWorkerJobProcessed() {
	globalManager.workerJobsProcessed.Inc()
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current registry in the text exposition format,
// for node_exporter's textfile collector. The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		globalManager.textfileErrors.Inc()
		return fmt.Errorf("%w: %s: %w", ErrWriteTextfile, path, err)
	}
	globalManager.textfileWrites.Inc()
	return nil
}
