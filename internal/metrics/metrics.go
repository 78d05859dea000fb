package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Lookups by outcome: hit|miss|error
	AccountLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_lookups_total",
			Help: "Account lookups by cache outcome",
		},
		[]string{"outcome"},
	)

	// Upstream explorer
	EtherscanRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etherscan_requests_total",
			Help: "Block-explorer requests by action and outcome",
		},
		[]string{"action", "outcome"},
	)
	EtherscanLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "etherscan_request_duration_seconds",
			Help:    "Latency of block-explorer requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	// Redis
	RedisLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Latency of cache commands.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"command"},
	)

	// Ledger
	LedgerInserts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_inserts_total",
			Help: "Addresses newly recorded in the ledger",
		},
	)

	initOnce sync.Once
)

// /metrics endpoint'i için handler
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(AccountLookups)
		prometheus.MustRegister(EtherscanRequests)
		prometheus.MustRegister(EtherscanLatency)
		prometheus.MustRegister(RedisLatency)
		prometheus.MustRegister(LedgerInserts)
	})
}
