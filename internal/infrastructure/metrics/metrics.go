package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics holds the engine's Prometheus metrics. It implements
// usecase.MetricsRecorder.
type Metrics struct {
	// Computation metrics
	Computations        *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec

	// Schedule metrics
	Overpayments      prometheus.Counter
	OverpaymentAmount prometheus.Histogram

	// Report cache metrics
	CacheRequests *prometheus.CounterVec
}

// New creates and registers all metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Computations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_computations_total",
				Help: "Total engine computations by operation and status",
			},
			[]string{"operation", "status"},
		),
		ComputationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_computation_duration_seconds",
				Help:    "Duration of engine computations",
				Buckets: []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"operation"},
		),

		Overpayments: factory.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_schedule_overpayments_total",
			Help: "Total schedule evaluations that found an overpayment",
		}),
		OverpaymentAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fintrack_schedule_overpayment_amount",
			Help:    "Total overpayment found per evaluation",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),

		CacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_report_cache_requests_total",
				Help: "Report cache lookups by operation and result",
			},
			[]string{"operation", "result"},
		),
	}
}

// ObserveComputation records one computation and its duration.
func (m *Metrics) ObserveComputation(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Computations.WithLabelValues(operation, status).Inc()
	m.ComputationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheResult records a cache hit or miss.
func (m *Metrics) RecordCacheResult(operation string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(operation, result).Inc()
}

// RecordOverpayment records an evaluation with a positive overpayment.
func (m *Metrics) RecordOverpayment(amount decimal.Decimal) {
	m.Overpayments.Inc()
	m.OverpaymentAmount.Observe(amount.InexactFloat64())
}
