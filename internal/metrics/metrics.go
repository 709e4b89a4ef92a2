package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// WalrusOperations counts Walrus uploads and fetches by operation and result.
	WalrusOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walrus_operations_total",
			Help: "Walrus publisher/aggregator calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	// SuiRPCTotal counts Sui JSON-RPC calls by method and result.
	SuiRPCTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sui_rpc_requests_total",
			Help: "Sui JSON-RPC calls by method and result",
		},
		[]string{"method", "result"},
	)

	// ProbeUp is 1 when the last probe of a dependency (sui, walrus) succeeded.
	ProbeUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_up",
			Help: "Result of the last health probe per dependency",
		},
		[]string{"dependency"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, WalrusOperations, SuiRPCTotal, ProbeUp)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// Used when no route pattern is known for the request.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncWalrus counts one Walrus operation ("upload", "fetch") with its result ("ok", "error").
func IncWalrus(operation, result string) {
	WalrusOperations.WithLabelValues(operation, result).Inc()
}

// IncSuiRPC counts one Sui RPC call.
func IncSuiRPC(method, result string) {
	SuiRPCTotal.WithLabelValues(method, result).Inc()
}

// SetProbeUp records the outcome of a dependency probe.
func SetProbeUp(dependency string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	ProbeUp.WithLabelValues(dependency).Set(v)
}
