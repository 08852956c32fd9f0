package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesalista_operations_total",
			Help: "Protocol operations by name and outcome",
		},
		[]string{"op", "outcome"}, // register|deactivate|... , ok|error|invalid|divergence
	)

	LedgerTxSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mesalista_ledger_tx_seconds",
			Help:    "Wall time of ledger writes, submission to one confirmation",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"method"},
	)

	UnhashedPayments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mesalista_unhashed_payments",
			Help: "Relational payment rows whose ledger hash back-fill is missing, as of the last sweep",
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		OperationsTotal,
		LedgerTxSeconds,
		UnhashedPayments,
	)
}
