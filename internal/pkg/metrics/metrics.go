// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger engine counters, exposed on /metrics.
var (
	MovementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concessions_ledger_movements_total",
		Help: "Stock movements recorded, by movement type",
	}, []string{"type"})

	ExpiryRecognitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "concessions_ledger_expiry_recognitions_total",
		Help: "Batches promoted to recognized expiry loss",
	})

	ChainRepairs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "concessions_ledger_chain_repairs_total",
		Help: "Monthly documents whose carry-forward was re-synced",
	})
)
