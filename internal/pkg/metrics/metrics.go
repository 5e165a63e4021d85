// Package metrics holds the Prometheus collectors of the service. They are
// registered on the default registry and served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tir_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tir_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ShareAccessTotal counts public token resolutions by type and outcome.
	ShareAccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tir_share_access_total",
			Help: "Public share link resolutions by link type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	// DocumentUploadsTotal counts upload pipeline runs by outcome.
	DocumentUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tir_document_uploads_total",
			Help: "Document uploads by outcome.",
		},
		[]string{"outcome"},
	)

	BlobDeleteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tir_blob_delete_failures_total",
		Help: "Blob deletions that failed and were skipped.",
	})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tir_share_cache_hits_total",
		Help: "Share token cache hits.",
	})
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tir_share_cache_misses_total",
		Help: "Share token cache misses.",
	})
)

// Share access outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeExpired  = "expired"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Upload outcomes.
const (
	UploadOK          = "ok"
	UploadBlobFailed  = "blob_failed"
	UploadRejected    = "rejected"
	UploadStoreFailed = "store_failed"
)
