// Package metrics holds the Prometheus collectors shared by the catalog
// store, the media stores and the HTTP layer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "portfolio"

var (
	CatalogOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_operations_total",
		Help:      "Catalog store operations by operation and result.",
	}, []string{"operation", "result"})

	MediaUploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Stored media assets by backend and result.",
	}, []string{"backend", "result"})

	MediaUploadBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_upload_bytes_total",
		Help:      "Bytes written by the media stores.",
	}, []string{"backend"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status code.",
	}, []string{"method", "code"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

// Registry contains every collector above plus the Go and process collectors.
var Registry = newRegistry()

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		CatalogOperations,
		MediaUploads,
		MediaUploadBytes,
		HTTPRequests,
		HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveCatalog counts one catalog operation.
func ObserveCatalog(operation string, err error) {
	CatalogOperations.WithLabelValues(operation, result(err)).Inc()
}

// ObserveUpload counts one media write.
func ObserveUpload(backend string, size int, err error) {
	MediaUploads.WithLabelValues(backend, result(err)).Inc()
	if err == nil {
		MediaUploadBytes.WithLabelValues(backend).Add(float64(size))
	}
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
