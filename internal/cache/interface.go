package cache

import (
	"context"
	"time"
)

// Client is the generic JSON cache: redis when configured, an in-process
// LRU otherwise. A missing key is reported as custom_errors.ErrCacheMiss.
//
//go:generate mockery --name Client --dir . --output ../../mocks/cache --outpkg cache_mock --filename client.go
type Client interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
