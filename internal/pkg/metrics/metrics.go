// Package metrics holds the Prometheus collectors of the storefront.
//
// Collectors are registered on the default registry through promauto and
// exposed by the CLI (--metrics-addr) and the mock backend (/metrics).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// Fetch cycle outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDiscarded = "discarded"
)

// ============================================
// Catalog API client
// ============================================

var (
	// ClientRequestsTotal counts outgoing API requests.
	// status is the HTTP status code or "network_error".
	ClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of catalog API requests",
		},
		[]string{"method", "route", "status"},
	)

	// ClientRequestDuration measures API request latency
	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Catalog API request latency in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	// ClientRequestsInFlight tracks requests waiting for a response
	ClientRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_in_flight",
			Help:      "Number of catalog API requests currently in flight",
		},
	)
)

// ============================================
// Resource lists
// ============================================

var (
	// ResourceFetchesTotal counts fetch cycles by resource and outcome.
	ResourceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resource",
			Name:      "fetches_total",
			Help:      "Total number of list fetch cycles",
		},
		[]string{"resource", "outcome"},
	)

	// ResourceFetchDuration measures fetch cycle latency
	ResourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resource",
			Name:      "fetch_duration_seconds",
			Help:      "List fetch cycle duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	// CategoryMutationsTotal counts category create/update/delete calls.
	CategoryMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resource",
			Name:      "category_mutations_total",
			Help:      "Total number of category mutations",
		},
		[]string{"operation", "outcome"},
	)
)

// ============================================
// Mock backend
// ============================================

var (
	MockRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mockapi",
			Name:      "requests_total",
			Help:      "Total number of requests served by the mock backend",
		},
		[]string{"method", "path", "status"},
	)

	MockRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mockapi",
			Name:      "request_duration_seconds",
			Help:      "Mock backend request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)
)

// RecordClientRequest records a finished API request.
// A status of 0 means no response was received.
func RecordClientRequest(method, route string, status int, duration time.Duration) {
	label := "network_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	ClientRequestsTotal.WithLabelValues(method, route, label).Inc()
	ClientRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordFetch records the outcome of one list fetch cycle.
func RecordFetch(resource, outcome string, duration time.Duration) {
	ResourceFetchesTotal.WithLabelValues(resource, outcome).Inc()
	ResourceFetchDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

// RecordCategoryMutation records a category mutation result.
func RecordCategoryMutation(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	CategoryMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordMockRequest records a request served by the mock backend.
func RecordMockRequest(method, path string, status int, duration time.Duration) {
	MockRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	MockRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
