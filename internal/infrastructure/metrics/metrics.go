package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics and implements usecase.Recorder.
type Metrics struct {
	// Price metrics
	PriceFetches    *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	LastRefresh     prometheus.Gauge

	// Ledger metrics
	HoldingsRebuilds prometheus.Counter
	RejectedRows     *prometheus.CounterVec
	NetWorthValue    prometheus.Gauge
}

// New creates and registers all Prometheus metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all Prometheus metrics and registers them with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PriceFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "networth_price_fetches_total",
				Help: "Total price lookups by source and status",
			},
			[]string{"source", "status"},
		),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "networth_price_refresh_duration_seconds",
			Help:    "Duration of full price refresh runs",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		LastRefresh: factory.NewGauge(prometheus.GaugeOpts{
			Name: "networth_price_refresh_last_timestamp_seconds",
			Help: "Unix time of the last completed price refresh",
		}),

		HoldingsRebuilds: factory.NewCounter(prometheus.CounterOpts{
			Name: "networth_holdings_rebuilds_total",
			Help: "Total holdings reconstructions from the ledger",
		}),
		RejectedRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "networth_rows_rejected_total",
				Help: "Total malformed ledger rows skipped by file",
			},
			[]string{"file"},
		),
		NetWorthValue: factory.NewGauge(prometheus.GaugeOpts{
			Name: "networth_value",
			Help: "Net worth at the latest valuation",
		}),
	}
}

// PriceFetched counts one price lookup.
func (m *Metrics) PriceFetched(source, status string) {
	m.PriceFetches.WithLabelValues(source, status).Inc()
}

// RefreshCompleted records a finished refresh run.
func (m *Metrics) RefreshCompleted(d time.Duration) {
	m.RefreshDuration.Observe(d.Seconds())
	m.LastRefresh.SetToCurrentTime()
}

// HoldingsRebuilt counts one holdings reconstruction.
func (m *Metrics) HoldingsRebuilt() {
	m.HoldingsRebuilds.Inc()
}

// RowsRejected counts malformed rows of file.
func (m *Metrics) RowsRejected(file string, n int) {
	m.RejectedRows.WithLabelValues(file).Add(float64(n))
}

// NetWorth sets the net worth gauge.
func (m *Metrics) NetWorth(v float64) {
	m.NetWorthValue.Set(v)
}
