package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement kind.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forum_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// PostViewIncrements counts successful view increments.
	PostViewIncrements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_post_view_increments_total",
		Help: "Total number of post view increments",
	})

	// AuthEvents counts login, logout and registration outcomes.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_auth_events_total",
		Help: "Authentication events by action and outcome",
	}, []string{"action", "outcome"})

	// CascadeDeletedPosts counts posts removed through board or user deletion.
	CascadeDeletedPosts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_cascade_deleted_posts_total",
		Help: "Posts deleted as part of a parent deletion",
	}, []string{"parent"})
)

// ObserveQuery records the latency of one SQL statement, labelled by its leading keyword.
func ObserveQuery(sql string, elapsed time.Duration) {
	DatabaseQueryLatency.WithLabelValues(queryOperation(sql)).Observe(elapsed.Seconds())
}

// RecordAuthEvent bumps the auth counter for action/outcome.
func RecordAuthEvent(action, outcome string) {
	AuthEvents.WithLabelValues(action, outcome).Inc()
}

func queryOperation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete":
		return op
	default:
		return "other"
	}
}
