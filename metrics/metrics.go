// Package metrics exposes Prometheus collectors for the fetch pipeline and
// the refresh cycle.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lane_swim_tracker",
			Name:      "upstream_requests_total",
			Help:      "Upstream requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	upstreamRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lane_swim_tracker",
			Name:      "upstream_retries_total",
			Help:      "Retry attempts against the upstream service.",
		},
	)

	lossyDecodes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lane_swim_tracker",
			Name:      "lossy_decodes_total",
			Help:      "Weekly payloads whose UTF-16 decode replaced invalid units.",
		},
	)

	sessionsNormalized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lane_swim_tracker",
			Name:      "sessions_normalized_total",
			Help:      "Lane-swim sessions produced by the normalizer.",
		},
	)

	refreshCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lane_swim_tracker",
			Name:      "refresh_cycles_total",
			Help:      "Refresh cycles by result.",
		},
		[]string{"result"},
	)

	refreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lane_swim_tracker",
			Name:      "refresh_duration_seconds",
			Help:      "Wall-clock duration of a full refresh cycle.",
			Buckets:   []float64{10, 30, 60, 120, 300, 600, 1200, 1800},
		},
	)

	snapshotFacilities = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lane_swim_tracker",
			Name:      "snapshot_facilities",
			Help:      "Facilities in the most recently written snapshot.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			upstreamRequests,
			upstreamRetries,
			lossyDecodes,
			sessionsNormalized,
			refreshCycles,
			refreshDuration,
			snapshotFacilities,
		)
	})
}

func IncUpstreamRequest(endpoint, outcome string) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

func IncUpstreamRetry() {
	upstreamRetries.Inc()
}

func IncLossyDecode() {
	lossyDecodes.Inc()
}

func AddSessionsNormalized(n int) {
	sessionsNormalized.Add(float64(n))
}

func IncRefreshCycle(result string) {
	refreshCycles.WithLabelValues(result).Inc()
}

func ObserveRefreshDuration(seconds float64) {
	refreshDuration.Observe(seconds)
}

func SetSnapshotFacilities(n int) {
	snapshotFacilities.Set(float64(n))
}
