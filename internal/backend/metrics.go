package backend

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "backend",
		Name:      "calls_total",
		Help:      "Calls made to the marketplace backend.",
	}, []string{"operation", "code"})

	backendErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "backend",
		Name:      "errors_total",
		Help:      "Backend calls that failed in transport or returned a non-2xx status.",
	}, []string{"operation"})

	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal",
		Subsystem: "backend",
		Name:      "call_duration_seconds",
		Help:      "Latency of backend calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

// recordCall records a backend call. status is 0 for transport failures.
func recordCall(operation string, status int, duration time.Duration, err error) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	backendCalls.WithLabelValues(operation, code).Inc()
	backendLatency.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil || status >= 300 {
		backendErrors.WithLabelValues(operation).Inc()
	}
}
