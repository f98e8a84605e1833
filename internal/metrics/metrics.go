package metrics

import "time"

type Provider interface {
	IncrementAPIRequests(operation, status string)
	RecordAPIRequestDuration(operation string, duration time.Duration)

	IncrementPushEvents(eventType string)
	IncrementPushEventsDropped()
	IncrementPushReconnects()
	SetPushConnected(connected bool)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	SetFeedLength(feed string, length int)
	SetServiceHealth(healthy bool)
}
