package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(backendRequestDuration, backendRequestsTotal)
}

var (
	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Latency of calls to the web backend.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"path"},
	)

	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Backend calls by path and outcome (ok/not_found/unavailable).",
		},
		[]string{"path", "outcome"},
	)
)

func ObserveBackendRequest(path, outcome string, elapsed time.Duration) {
	backendRequestDuration.WithLabelValues(norm(path)).Observe(elapsed.Seconds())
	backendRequestsTotal.WithLabelValues(norm(path), norm(outcome)).Inc()
}
