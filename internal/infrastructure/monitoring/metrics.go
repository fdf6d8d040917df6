// Package monitoring collects Prometheus metrics for the HTTP surface
// and the sandbox filesystem operations behind it.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Filesystem operation metrics
	FileOps        *prometheus.CounterVec
	FileOpDuration *prometheus.HistogramVec
	UploadBytes    prometheus.Counter
	ArchiveBytes   prometheus.Counter

	// System metrics
	Uptime    prometheus.GaugeFunc
	registry  *prometheus.Registry
	startTime time.Time
}

// New creates a metrics collector backed by its own registry, so multiple
// instances can coexist in one process.
func New() *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
	}
	factory := promauto.With(m.registry)

	m.RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nimbus_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nimbus_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
	m.RequestSize = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nimbus_http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		},
		[]string{"method", "path"},
	)
	m.ResponseSize = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nimbus_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		},
		[]string{"method", "path"},
	)
	m.FileOps = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nimbus_file_operations_total",
			Help: "Total sandbox filesystem operations",
		},
		[]string{"operation", "status"},
	)
	m.FileOpDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nimbus_file_operation_duration_seconds",
			Help:    "Sandbox filesystem operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"operation"},
	)
	m.UploadBytes = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "nimbus_upload_bytes_total",
			Help: "Total bytes accepted by uploads",
		},
	)
	m.ArchiveBytes = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "nimbus_archive_bytes_total",
			Help: "Total compressed bytes served as archives",
		},
	)
	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "nimbus_uptime_seconds",
			Help: "Seconds since process start",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler exposes the metrics in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one handled HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordFileOp records one sandbox filesystem operation.
func (m *Metrics) RecordFileOp(operation, status string, duration time.Duration) {
	m.FileOps.WithLabelValues(operation, status).Inc()
	m.FileOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
