package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "binwire",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "binwire",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	transportBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "binwire",
			Subsystem: "transport",
			Name:      "bytes_total",
			Help:      "Bytes moved through metered transports.",
		},
		[]string{"transport", "direction"},
	)
	transportUnderflows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "binwire",
			Subsystem: "transport",
			Name:      "underflows_total",
			Help:      "Reads that asked for more bytes than a metered transport held.",
		},
		[]string{"transport"},
	)
	codecValues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "binwire",
			Subsystem: "codec",
			Name:      "values_total",
			Help:      "Typed values written or read by the dispatcher.",
		},
		[]string{"impl", "op", "type"},
	)
	codecErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "binwire",
			Subsystem: "codec",
			Name:      "errors_total",
			Help:      "Codec failures by kind.",
		},
		[]string{"impl", "op", "kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, transportBytes, transportUnderflows, codecValues, codecErrors)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordTransportBytes counts n bytes in direction "read" or "write".
func RecordTransportBytes(transport, direction string, n int) {
	if n <= 0 {
		return
	}
	RegisterMetrics()
	transportBytes.WithLabelValues(transport, direction).Add(float64(n))
}

func RecordTransportUnderflow(transport string) {
	RegisterMetrics()
	transportUnderflows.WithLabelValues(transport).Inc()
}

func RecordCodecValue(impl, op, typ string) {
	RegisterMetrics()
	codecValues.WithLabelValues(impl, op, typ).Inc()
}

func RecordCodecError(impl, op, kind string) {
	RegisterMetrics()
	codecErrors.WithLabelValues(impl, op, kind).Inc()
}
