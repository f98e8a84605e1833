package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
)

const defaultSize = 256

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Client is the in-process fallback cache used when redis is disabled. It
// keeps the same JSON round-trip as the redis client so cached values behave
// identically in both modes.
type Client struct {
	cache *lru.Cache[string, entry]
	log   *logger.Logger
}

func NewClient(log *logger.Logger) (*Client, error) {
	cache, err := lru.New[string, entry](defaultSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &Client{cache: cache, log: log}, nil
}

func (c *Client) Get(ctx context.Context, key string, dest any) error {
	e, ok := c.cache.Get(key)
	if !ok {
		return custom_errors.ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.cache.Remove(key)
		return custom_errors.ErrCacheMiss
	}

	if err := json.Unmarshal(e.data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	c.cache.Add(key, entry{data: data, expiresAt: expiresAt})
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	c.cache.Remove(key)
	return nil
}

func (c *Client) Close() error {
	c.cache.Purge()
	return nil
}
