package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsProcessed counts reconciled events by type and status
	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artzone_events_processed_total",
			Help: "Total number of minter events processed",
		},
		[]string{"event_type", "status"},
	)

	// ContractReadFallbacks counts reverted on-chain reads that were
	// substituted with defaults
	ContractReadFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artzone_contract_read_fallbacks_total",
			Help: "Total number of contract reads that fell back to defaults",
		},
		[]string{"method"},
	)

	// MetadataResolutions counts metadata resolver outcomes
	MetadataResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artzone_metadata_resolutions_total",
			Help: "Total number of metadata resolution attempts",
		},
		[]string{"outcome"},
	)

	// NegativeBalances counts balance updates that drove a holder balance
	// below zero
	NegativeBalances = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "artzone_negative_balances_total",
			Help: "Total number of balance updates resulting in a negative balance",
		},
	)

	// LastProcessedBlock tracks the emitter's block cursor
	LastProcessedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artzone_last_processed_block",
			Help: "Last block number processed by the event emitter",
		},
	)
)
