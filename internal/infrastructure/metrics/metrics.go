package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountsCreated           prometheus.Counter
	DuplicateDocumentRejected prometheus.Counter

	// Entry metrics
	EntriesCreated                *prometheus.CounterVec
	EntriesDeleted                prometheus.Counter
	EntryAmount                   prometheus.Histogram
	InsufficientBalanceRejections prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates all Prometheus metrics and registers them with reg. Tests pass
// a fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fincontrol_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		DuplicateDocumentRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "fincontrol_duplicate_document_rejections_total",
			Help: "Total number of account creations rejected for a duplicate document",
		}),

		// Entry metrics
		EntriesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincontrol_entries_created_total",
				Help: "Total number of ledger entries created by kind",
			},
			[]string{"kind"},
		),
		EntriesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fincontrol_entries_deleted_total",
			Help: "Total number of ledger entries deleted",
		}),
		EntryAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincontrol_entry_amount",
			Help:    "Entry amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		InsufficientBalanceRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "fincontrol_insufficient_balance_rejections_total",
			Help: "Total number of debits rejected for insufficient balance",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincontrol_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincontrol_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
