package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gmgn_node_requests_total",
			Help: "Aptos node requests by outcome",
		},
		[]string{"outcome"},
	)

	nodeRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gmgn_node_request_duration_seconds",
			Help:    "Aptos node request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	nodeRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmgn_node_retries_total",
			Help: "Aptos node requests repeated after a server or network failure",
		},
	)

	swapRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gmgn_swap_records_total",
			Help: "Transactions seen by the swap pipeline by stage",
		},
		[]string{"stage"},
	)

	leaderboardAddressesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gmgn_leaderboard_addresses_total",
			Help: "Addresses ranked by result",
		},
		[]string{"result"},
	)

	leaderboardDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gmgn_leaderboard_duration_seconds",
			Help:    "Leaderboard ranking duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	analysisCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gmgn_analysis_cache_total",
			Help: "Trader analysis cache lookups by result",
		},
		[]string{"result"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gmgn_http_requests_total",
			Help: "HTTP API requests",
		},
		[]string{"route", "status"},
	)
)

// RecordNodeRequest records one Aptos node request.
func RecordNodeRequest(outcome string, duration time.Duration) {
	nodeRequestsTotal.WithLabelValues(outcome).Inc()
	nodeRequestDuration.Observe(duration.Seconds())
}

// RecordNodeRetry records one repeated node request.
func RecordNodeRetry() {
	nodeRetriesTotal.Inc()
}

// RecordSwapPipeline records pipeline stage counts for one batch.
func RecordSwapPipeline(candidates, kept, dropped int) {
	swapRecordsTotal.WithLabelValues("candidate").Add(float64(candidates))
	swapRecordsTotal.WithLabelValues("kept").Add(float64(kept))
	swapRecordsTotal.WithLabelValues("dropped").Add(float64(dropped))
}

// RecordLeaderboard records one ranking run.
func RecordLeaderboard(ok, failed int, duration time.Duration) {
	leaderboardAddressesTotal.WithLabelValues("ok").Add(float64(ok))
	leaderboardAddressesTotal.WithLabelValues("failed").Add(float64(failed))
	leaderboardDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records an analysis cache hit, miss or error.
func RecordCacheLookup(result string) {
	analysisCacheTotal.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records one API request.
func RecordHTTPRequest(route, status string) {
	httpRequestsTotal.WithLabelValues(route, status).Inc()
}
