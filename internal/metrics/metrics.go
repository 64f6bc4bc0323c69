package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for HTTP requests, authentication attempts and employee
// operations, and histograms for request and database query latency.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	AuthAttempts    *prometheus.CounterVec
	EmployeeOps     *prometheus.CounterVec
	RevokedSessions prometheus.Counter
	DBQueryDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_http_requests_total",
			Help: "Total number of HTTP requests served by the API.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "athena_http_request_duration_seconds",
			Help:    "Latency of HTTP requests served by the API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AuthAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_auth_attempts_total",
			Help: "Administrator registration, login and session checks by result.",
		}, []string{"operation", "result"}),
		EmployeeOps: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_employee_operations_total",
			Help: "Employee service operations by result.",
		}, []string{"operation", "result"}),
		RevokedSessions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "athena_revoked_sessions_total",
			Help: "Total number of session tokens revoked on logout.",
		}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "athena_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'get_admin', 'save_employee', ...
	}

	for _, operation := range []string{"register", "login", "verify"} {
		metrics.AuthAttempts.WithLabelValues(operation, "success")
		metrics.AuthAttempts.WithLabelValues(operation, "failure")
	}

	return metrics
}
