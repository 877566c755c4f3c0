package metrics

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersTotal counts total transfers by direction and status
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_transfers_total",
			Help: "Total number of bridge transfers",
		},
		[]string{"direction", "status"},
	)

	// TransferDuration tracks transfer processing time
	TransferDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_transfer_duration_seconds",
			Help:    "Transfer processing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"direction"},
	)

	// TransferAmountUSD tracks the USD value of admitted transfers
	TransferAmountUSD = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_transfer_amount_usd",
			Help:    "USD value of bridged transfers",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		},
		[]string{"direction"},
	)

	// PendingBridgeAmountUSD tracks the unfinalized outbound value
	PendingBridgeAmountUSD = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bridge_pending_amount_usd",
			Help: "USD value of outbound transfers not yet final",
		},
	)

	// PendingTransfers tracks number of unfinalized outbound transfers
	PendingTransfers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bridge_pending_transfers",
			Help: "Number of outbound transfers not yet final",
		},
	)

	// FinalizedTransfers counts pending transfers released by the finality sweep
	FinalizedTransfers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bridge_finalized_transfers_total",
			Help: "Total number of pending transfers that reached finality",
		},
	)

	// AdmissionsHalted is 1 while outbound admissions are halted
	AdmissionsHalted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bridge_admissions_halted",
			Help: "Whether outbound admissions are halted",
		},
	)

	// PoolBalance tracks liquidity pool figures in native units
	PoolBalance = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bridge_pool_balance",
			Help: "Liquidity pool balance by kind (assets, fees, available, shares)",
		},
		[]string{"kind"},
	)

	// ReorgsDetected counts conflicting transfer ids by origin chain
	ReorgsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_reorgs_detected_total",
			Help: "Total number of reorged transfers detected",
		},
		[]string{"origin_chain"},
	)

	// Clawbacks counts insurance fund liquidations by status
	Clawbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_clawbacks_total",
			Help: "Total number of reorg clawbacks",
		},
		[]string{"status"},
	)

	// OraclePrice tracks the last native/USD price used
	OraclePrice = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bridge_oracle_price_usd",
			Help: "Last native asset price in USD",
		},
	)

	// OracleFailures counts failed price fetches by source
	OracleFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_oracle_failures_total",
			Help: "Total number of failed price fetches",
		},
		[]string{"source"},
	)

	// TransactionsSent counts payout transactions sent
	TransactionsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_transactions_sent_total",
			Help: "Total number of transactions sent",
		},
		[]string{"chain", "status"},
	)

	// MessagesDispatched counts outbound messages by destination and status
	MessagesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_messages_dispatched_total",
			Help: "Total number of cross-chain messages dispatched",
		},
		[]string{"destination", "status"},
	)

	// ErrorsTotal counts errors by type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// LastProcessedBlock tracks the block used by the last finality sweep
	LastProcessedBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bridge_last_processed_block",
			Help: "Last processed block number by chain",
		},
		[]string{"chain"},
	)
)

// Scaled converts an 18-decimal fixed point integer into a float for gauges.
func Scaled(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(v), big.NewFloat(1e18)).Float64()
	return f
}
