package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "tdexpool"

	resultOk    = "ok"
	resultError = "error"
)

// PoolMetrics collects counters about pool operations and gauges about the
// state of every pool.
type PoolMetrics struct {
	operations    *prometheus.CounterVec
	feesCollected *prometheus.GaugeVec
	totalShares   *prometheus.GaugeVec
}

// NewPoolMetrics creates the pool collectors and registers them with reg.
func NewPoolMetrics(reg prometheus.Registerer) (*PoolMetrics, error) {
	m := &PoolMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Number of pool operations by type and result.",
		}, []string{"operation", "result"}),
		feesCollected: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fees_collected",
			Help:      "Fees accrued by the pool and not yet withdrawn.",
		}, []string{"pool"}),
		totalShares: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_shares",
			Help:      "Outstanding shares of the pool.",
		}, []string{"pool"}),
	}

	for _, c := range []prometheus.Collector{
		m.operations, m.feesCollected, m.totalShares,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PoolMetrics) OperationCompleted(operation string, err error) {
	result := resultOk
	if err != nil {
		result = resultError
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *PoolMetrics) PoolUpdated(
	poolKey string, totalShares, feesCollectedA uint64,
) {
	m.totalShares.WithLabelValues(poolKey).Set(float64(totalShares))
	m.feesCollected.WithLabelValues(poolKey).Set(float64(feesCollectedA))
}
