package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
	"feedwatch/internal/model"
)

const (
	pageCacheKeyPrefix = "feed:page:"
	pageCacheTTL       = 2 * time.Minute
)

// PageCache holds recently fetched feed pages so a re-entered screen paints
// instantly while the fresh fetch runs. The TTL is short: push events make
// old pages stale quickly.
type PageCache struct {
	client Client
	log    *logger.Logger
}

func NewPageCache(client Client, log *logger.Logger) *PageCache {
	return &PageCache{client: client, log: log}
}

func (p *PageCache) GetPage(ctx context.Context, page int) (*model.PostPage, error) {
	key := p.pageKey(page)

	var result model.PostPage
	err := p.client.Get(ctx, key, &result)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		p.log.Error("Failed to get page from cache",
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get page from cache: %w", err)
	}
	return &result, nil
}

func (p *PageCache) SetPage(ctx context.Context, result *model.PostPage) error {
	if result == nil {
		return fmt.Errorf("page cannot be nil")
	}

	key := p.pageKey(result.Page)
	if err := p.client.Set(ctx, key, result, pageCacheTTL); err != nil {
		p.log.Error("Failed to set page cache",
			slog.Int("page", result.Page),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set page cache: %w", err)
	}
	return nil
}

func (p *PageCache) DeletePage(ctx context.Context, page int) error {
	if err := p.client.Delete(ctx, p.pageKey(page)); err != nil {
		p.log.Error("Failed to delete page from cache",
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete page from cache: %w", err)
	}
	return nil
}

func (p *PageCache) pageKey(page int) string {
	return pageCacheKeyPrefix + strconv.Itoa(page)
}
