// Package metrics exposes Prometheus collectors for the block pipeline,
// mempool admission, and WebSocket layer, built directly on
// github.com/prometheus/client_golang rather than a bespoke
// registry/collector abstraction.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups every collector the indexer registers. It is constructed
// once per process and passed explicitly rather than reached for as a
// global. blockpipeline, mempool and wsproto do not take a Metrics; the
// only collector fed today is WSConnections, sampled by cmd/opnetd.
type Metrics struct {
	BlocksProcessed     prometheus.Counter
	BlocksReverted      prometheus.Counter
	BlockGasUsed        prometheus.Histogram
	TransactionsByType  *prometheus.CounterVec
	BlockExecutionTime  prometheus.Histogram

	MempoolAdmitted  prometheus.Counter
	MempoolRejected  *prometheus.CounterVec
	MempoolSize      prometheus.Gauge

	WSConnections   prometheus.Gauge
	WSRequestsTotal *prometheus.CounterVec
}

// New builds and registers every collector against reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the process
// default registry across parallel test packages.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BlocksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opnet",
			Subsystem: "pipeline",
			Name:      "blocks_processed_total",
			Help:      "Blocks that reached Finalized.",
		}),
		BlocksReverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opnet",
			Subsystem: "pipeline",
			Name:      "blocks_reverted_total",
			Help:      "Blocks that ended in Reverted.",
		}),
		BlockGasUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "opnet",
			Subsystem: "pipeline",
			Name:      "block_gas_used",
			Help:      "Gas used per finalized block.",
			Buckets:   prometheus.ExponentialBuckets(1_000, 4, 12),
		}),
		TransactionsByType: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opnet",
			Subsystem: "pipeline",
			Name:      "transactions_total",
			Help:      "Transactions processed, partitioned by classification.",
		}, []string{"type"}),
		BlockExecutionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "opnet",
			Subsystem: "pipeline",
			Name:      "block_execution_seconds",
			Help:      "Wall-clock time spent in Execute per block.",
			Buckets:   prometheus.DefBuckets,
		}),
		MempoolAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opnet",
			Subsystem: "mempool",
			Name:      "admitted_total",
			Help:      "Submissions accepted by the admission pipeline.",
		}),
		MempoolRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opnet",
			Subsystem: "mempool",
			Name:      "rejected_total",
			Help:      "Submissions rejected, partitioned by reason.",
		}, []string{"reason"}),
		MempoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "opnet",
			Subsystem: "mempool",
			Name:      "entries",
			Help:      "Current mempool entry count.",
		}),
		WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "opnet",
			Subsystem: "ws",
			Name:      "connections",
			Help:      "Currently open WebSocket connections.",
		}),
		WSRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opnet",
			Subsystem: "ws",
			Name:      "requests_total",
			Help:      "WebSocket requests handled, partitioned by opcode.",
		}, []string{"opcode"}),
	}

	reg.MustRegister(
		m.BlocksProcessed, m.BlocksReverted, m.BlockGasUsed, m.TransactionsByType, m.BlockExecutionTime,
		m.MempoolAdmitted, m.MempoolRejected, m.MempoolSize,
		m.WSConnections, m.WSRequestsTotal,
	)
	return m
}
