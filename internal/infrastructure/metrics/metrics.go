package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Account metrics
	AccountsOpened    prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransferErrors     *prometheus.CounterVec
	TransferDuration   prometheus.Histogram
	TransferAmount     prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Idempotency metrics
	IdempotentReplays prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AccountsOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "mybank_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mybank_account_operations_total",
				Help: "Account operations by type and result",
			},
			[]string{"operation", "result"},
		),
		TransfersCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "mybank_transfers_completed_total",
			Help: "Total number of completed transfers",
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mybank_transfer_errors_total",
				Help: "Transfer failures by reason",
			},
			[]string{"reason"},
		),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mybank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mybank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mybank_http_requests_total",
				Help: "HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mybank_http_request_duration_seconds",
				Help:    "HTTP request durations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "mybank_idempotent_replays_total",
			Help: "Requests answered from the idempotency store",
		}),
	}
}
