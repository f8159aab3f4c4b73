package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StatusMetrics records aggregation pipeline activity.
type StatusMetrics struct {
	duration  *prometheus.HistogramVec
	cacheHit  prometheus.Counter
	cacheMiss prometheus.Counter
	issues    *prometheus.CounterVec
}

// NewStatusMetrics registers the aggregation metrics on the provided registerer.
func NewStatusMetrics(reg prometheus.Registerer) *StatusMetrics {
	if reg == nil {
		return &StatusMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "status_aggregation_duration_seconds",
		Help:    "Duration of product status aggregations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	cacheHit := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "status_cache_hits",
		Help: "Status reports served from cache.",
	})
	cacheMiss := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "status_cache_misses",
		Help: "Status reports recomputed after a cache miss.",
	})
	issues := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "status_issues_found",
		Help: "Issues recorded during aggregation, by issue name.",
	}, []string{"issue"})
	reg.MustRegister(duration, cacheHit, cacheMiss, issues)
	return &StatusMetrics{
		duration:  duration,
		cacheHit:  cacheHit,
		cacheMiss: cacheMiss,
		issues:    issues,
	}
}

// ObserveDuration records how long one product aggregation took.
func (s *StatusMetrics) ObserveDuration(kind string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncCacheHit counts a report served from cache.
func (s *StatusMetrics) IncCacheHit() {
	if s == nil || s.cacheHit == nil {
		return
	}
	s.cacheHit.Inc()
}

// IncCacheMiss counts a report that had to be recomputed.
func (s *StatusMetrics) IncCacheMiss() {
	if s == nil || s.cacheMiss == nil {
		return
	}
	s.cacheMiss.Inc()
}

// IncIssue counts one recorded issue.
func (s *StatusMetrics) IncIssue(issue string) {
	if s == nil || s.issues == nil {
		return
	}
	s.issues.WithLabelValues(normalizeLabel(issue)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
