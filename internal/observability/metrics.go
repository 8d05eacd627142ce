package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smashboard_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smashboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RecommendationLatency records how long the ranking pipeline takes per stage.
	RecommendationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smashboard_recommendation_latency_seconds",
		Help:    "Recommendation pipeline latency in seconds by stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	// RecommendationBackfills counts how often the ranked result ran short
	// and hot posts were appended.
	RecommendationBackfills = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smashboard_recommendation_backfills_total",
		Help: "Total number of recommendation requests that needed hot-post backfill",
	})
)

// ObserveStage records the latency of a recommendation pipeline stage.
func ObserveStage(stage string, start time.Time) {
	RecommendationLatency.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
