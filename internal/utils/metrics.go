package utils

import (
	"time"

	"tawdifak-listings/pkg/metrics"
)

// RecordMongoOperation observes the duration since start and counts err, if any.
func RecordMongoOperation(operation, collection string, start time.Time, err error) {
	metrics.MongoOperationDuration.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues(operation, collection).Inc()
	}
}

// RecordHTTPRequest observes one served request.
func RecordHTTPRequest(method, endpoint, status string, start time.Time) {
	metrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, endpoint, status).Observe(time.Since(start).Seconds())
}
