package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flock_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StatusChanges counts moderation status transitions by resulting status.
	StatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_user_status_changes_total",
		Help: "Total number of user moderation status changes by new status",
	}, []string{"status"})

	// CascadeDeletions counts user deletions that ran the full cascade.
	CascadeDeletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flock_user_cascade_deletions_total",
		Help: "Total number of user account deletions including their content cascade",
	})

	// FollowToggles counts follow toggle operations by outcome.
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_follow_toggles_total",
		Help: "Total number of follow toggle operations by outcome",
	}, []string{"outcome"})

	// LikeToggles counts like toggle operations by outcome.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_like_toggles_total",
		Help: "Total number of like toggle operations by outcome",
	}, []string{"outcome"})

	// MediaUploads counts media uploads by kind and result.
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_media_uploads_total",
		Help: "Total number of media uploads by kind and result",
	}, []string{"kind", "result"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
