package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend metrics
	BackendQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "backend_query_duration_seconds",
			Help: "Time spent executing a backend query",
		},
		[]string{"backend", "operation"},
	)

	BackendQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_query_errors_total",
			Help: "Total number of failed backend queries",
		},
		[]string{"backend", "operation"},
	)

	BackendConnected = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backend_connected",
			Help: "Whether the backend connection is usable (1) or not (0)",
		},
		[]string{"backend"},
	)

	// Dashboard metrics
	ViewRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_view_requests_total",
			Help: "Total number of view operations by outcome",
		},
		[]string{"view", "outcome"},
	)

	SelectedSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_selected_sessions",
		Help: "Number of sessions holding a faculty selection",
	})
)

// ObserveQuery records the duration and outcome of one backend call
func ObserveQuery(backend, operation string, start time.Time, err error) {
	BackendQueryDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		BackendQueryErrors.WithLabelValues(backend, operation).Inc()
	}
}

// SetConnected records backend availability
func SetConnected(backend string, ok bool) {
	v := 0.0
	if ok {
		v = 1
	}
	BackendConnected.WithLabelValues(backend).Set(v)
}
