package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_cache_hits_total",
			Help: "Total number of listing cache hits",
		},
		[]string{"listing"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_cache_misses_total",
			Help: "Total number of listing cache misses",
		},
		[]string{"listing"},
	)
	CacheFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_cache_failures_total",
			Help: "Cache operations that failed and were swallowed",
		},
		[]string{"operation"},
	)
	RedisOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	RedisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of Redis errors",
		},
		[]string{"operation"},
	)
	MongoOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongo_operation_duration_seconds",
			Help:    "MongoDB operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)
	MongoErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_errors_total",
			Help: "Total number of MongoDB errors",
		},
		[]string{"operation", "collection"},
	)
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_fetch_duration_seconds",
			Help:    "Duration of data-access fetches per listing",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"listing", "outcome"},
	)
	StaleResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_stale_responses_total",
			Help: "Fetch responses discarded because a newer fetch superseded them",
		},
		[]string{"listing"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "listing_active_sessions",
			Help: "Number of live listing sessions",
		},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry; safe to call twice.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			CacheHitsTotal,
			CacheMissesTotal,
			CacheFailuresTotal,
			RedisOperationDuration,
			RedisErrorsTotal,
			MongoOperationDuration,
			MongoErrorsTotal,
			FetchDuration,
			StaleResponsesTotal,
			ActiveSessions,
		)
	})
}
