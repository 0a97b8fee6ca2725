package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the best-effort subsystems. Notification failures are only
// observable here and in logs, never through a request's result.
var (
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epg_notifications_sent_total",
		Help: "Match notification emails successfully handed to the SMTP server.",
	})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epg_notification_failures_total",
		Help: "Match notification emails that failed to deliver.",
	})

	DistanceCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epg_distance_cache_hits_total",
		Help: "Distance lookups served from the Redis cache.",
	})

	DistanceCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epg_distance_cache_misses_total",
		Help: "Distance lookups that fell back to direct computation.",
	})
)
