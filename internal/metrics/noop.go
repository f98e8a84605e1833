package metrics

import "time"

// Noop satisfies Provider for tests and for runs with metrics disabled.
type Noop struct{}

func NewNoop() Provider { return Noop{} }

func (Noop) IncrementAPIRequests(operation, status string) {}

func (Noop) RecordAPIRequestDuration(operation string, duration time.Duration) {}

func (Noop) IncrementPushEvents(eventType string) {}

func (Noop) IncrementPushEventsDropped() {}

func (Noop) IncrementPushReconnects() {}

func (Noop) SetPushConnected(connected bool) {}

func (Noop) IncrementCacheHits() {}

func (Noop) IncrementCacheMisses() {}

func (Noop) RecordCacheOperationDuration(operation string, duration time.Duration) {}

func (Noop) SetFeedLength(feed string, length int) {}

func (Noop) SetServiceHealth(healthy bool) {}
