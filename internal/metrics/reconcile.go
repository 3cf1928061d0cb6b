package metrics

import "github.com/prometheus/client_golang/prometheus"

// Reconciliation Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reconcile",
			Name:      "queries_total",
			Help:      "Total number of reconciliation queries processed",
		},
		[]string{"category", "status"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reconcile",
			Name:      "query_duration_seconds",
			Help:      "Single query matching duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"category"},
	)

	CandidatesReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reconcile",
			Name:      "candidates_returned",
			Help:      "Number of candidates returned per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"category"},
	)

	FuzzyScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reconcile",
			Name:      "fuzzy_scans_total",
			Help:      "Fuzzy scan passes, split by whether the exact pass already filled the limit",
		},
		[]string{"result"}, // "scanned" / "skipped"
	)

	BatchSizes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reconcile",
			Name:      "batch_size",
			Help:      "Number of queries per reconciliation batch",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)
)

var reconcileMetricsRegistered bool

// RegisterReconcileMetrics registers Prometheus reconciliation metrics. Must be called once from main.
func RegisterReconcileMetrics() {
	if reconcileMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(CandidatesReturned)
	prometheus.MustRegister(FuzzyScansTotal)
	prometheus.MustRegister(BatchSizes)
	reconcileMetricsRegistered = true
}
