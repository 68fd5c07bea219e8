package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Statement metrics
	StatementsCreated *prometheus.CounterVec
	StatementErrors   *prometheus.CounterVec
	OperationAmount   *prometheus.HistogramVec
	OperationDuration *prometheus.HistogramVec
	BalanceReads      prometheus.Counter
	BalanceCacheHits  prometheus.Counter

	// User metrics
	UsersCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Statement metrics
		StatementsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_statements_created_total",
				Help: "Total number of statement entries created by operation type",
			},
			[]string{"operation"},
		),
		StatementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_statement_errors_total",
				Help: "Total number of rejected statement operations by reason",
			},
			[]string{"operation", "reason"},
		),
		OperationAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gostatement_operation_amount",
				Help:    "Statement operation amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gostatement_operation_duration_seconds",
				Help:    "Duration of statement operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		BalanceReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_balance_reads_total",
			Help: "Total number of balance statement reads",
		}),
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_balance_cache_hits_total",
			Help: "Total number of balance reads served from cache",
		}),

		// User metrics
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_users_created_total",
			Help: "Total number of users created",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gostatement_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gostatement_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
