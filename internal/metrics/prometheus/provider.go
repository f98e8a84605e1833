package prometheus

import (
	"time"

	"feedwatch/internal/metrics"
)

type PrometheusMetricsProvider struct{}

func NewPrometheusMetricsProvider() metrics.Provider {
	return &PrometheusMetricsProvider{}
}

func (p *PrometheusMetricsProvider) IncrementAPIRequests(operation, status string) {
	APIRequestsTotal.WithLabelValues(operation, status).Inc()
}

func (p *PrometheusMetricsProvider) RecordAPIRequestDuration(operation string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementPushEvents(eventType string) {
	PushEventsTotal.WithLabelValues(eventType).Inc()
}

func (p *PrometheusMetricsProvider) IncrementPushEventsDropped() {
	PushEventsDroppedTotal.Inc()
}

func (p *PrometheusMetricsProvider) IncrementPushReconnects() {
	PushReconnectsTotal.Inc()
}

func (p *PrometheusMetricsProvider) SetPushConnected(connected bool) {
	if connected {
		PushConnected.Set(1)
	} else {
		PushConnected.Set(0)
	}
}

func (p *PrometheusMetricsProvider) IncrementCacheHits() {
	CacheHitsTotal.Inc()
}

func (p *PrometheusMetricsProvider) IncrementCacheMisses() {
	CacheMissesTotal.Inc()
}

func (p *PrometheusMetricsProvider) RecordCacheOperationDuration(operation string, duration time.Duration) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) SetFeedLength(feed string, length int) {
	FeedLength.WithLabelValues(feed).Set(float64(length))
}

func (p *PrometheusMetricsProvider) SetServiceHealth(healthy bool) {
	if healthy {
		ServiceHealth.Set(1)
	} else {
		ServiceHealth.Set(0)
	}
}
