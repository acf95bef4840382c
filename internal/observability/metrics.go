package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bloxmarket_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bloxmarket_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// VotesCast counts vote toggles by subject type and outcome.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bloxmarket_votes_cast_total",
		Help: "Total vote toggles by subject type and resulting state",
	}, []string{"subject", "result"})

	// ApplicationsReviewed counts middleman application reviews by outcome.
	ApplicationsReviewed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bloxmarket_middleman_reviews_total",
		Help: "Total middleman application reviews by outcome",
	}, []string{"outcome"})

	// UploadsStored counts stored upload files by category.
	UploadsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bloxmarket_uploads_stored_total",
		Help: "Total uploaded files stored on disk by category",
	}, []string{"category"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
