package cache

import (
	"time"

	"tawdifak-listings/pkg/metrics"
)

// record the duration of a Redis operation with the given label.
func RecordOperationDuration(label string, start time.Time) {
	metrics.RedisOperationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}

// increment the error counter for a Redis operation with the given label.
func IncrementError(label string) {
	metrics.RedisErrorsTotal.WithLabelValues(label).Inc()
}
