package feed_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"feedwatch/internal/cache"
	api_client "feedwatch/internal/clients/api"
	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
	"feedwatch/internal/metrics"
	"feedwatch/internal/model"
)

// ClientCacheDecorator wraps the API client with a read-through cache for
// the profile and the home feed's first page, and invalidates on every
// mutation. Only the unfiltered feed is cached; per-user pages churn too
// much to be worth it.
type ClientCacheDecorator struct {
	client    api_client.Client
	userCache *cache.UserCache
	pageCache *cache.PageCache
	log       *logger.Logger
	metrics   metrics.Provider
}

func NewClientCacheDecorator(
	client api_client.Client,
	userCache *cache.UserCache,
	pageCache *cache.PageCache,
	log *logger.Logger,
	metrics metrics.Provider,
) *ClientCacheDecorator {
	return &ClientCacheDecorator{
		client:    client,
		userCache: userCache,
		pageCache: pageCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *ClientCacheDecorator) ListPosts(ctx context.Context, page, limit int) (*model.PostPage, error) {
	if page == 1 {
		start := time.Now()
		cached, err := d.pageCache.GetPage(ctx, page)
		d.metrics.RecordCacheOperationDuration("page_get", time.Since(start))
		if err == nil && cached.Limit == limit {
			d.metrics.IncrementCacheHits()
			d.log.Debug("Feed page served from cache", slog.Int("page", page))
			return cached, nil
		}
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			d.metrics.IncrementCacheMisses()
		}
	}

	result, err := d.client.ListPosts(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	if page == 1 {
		start := time.Now()
		if err := d.pageCache.SetPage(ctx, result); err != nil {
			d.log.Warn("Failed to cache feed page", slog.String("error", err.Error()))
		}
		d.metrics.RecordCacheOperationDuration("page_set", time.Since(start))
	}
	return result, nil
}

func (d *ClientCacheDecorator) ListUserPosts(ctx context.Context, userID string, page, limit int) (*model.PostPage, error) {
	return d.client.ListUserPosts(ctx, userID, page, limit)
}

func (d *ClientCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	created, err := d.client.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	d.invalidateFirstPage(ctx)
	return created, nil
}

func (d *ClientCacheDecorator) UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) (*model.Post, error) {
	updated, err := d.client.UpdatePost(ctx, id, post)
	if err != nil {
		return nil, err
	}
	d.invalidateFirstPage(ctx)
	return updated, nil
}

func (d *ClientCacheDecorator) DeletePost(ctx context.Context, id string) error {
	if err := d.client.DeletePost(ctx, id); err != nil {
		return err
	}
	d.invalidateFirstPage(ctx)
	return nil
}

func (d *ClientCacheDecorator) GetMe(ctx context.Context) (*model.User, error) {
	start := time.Now()
	cached, err := d.userCache.GetMe(ctx)
	d.metrics.RecordCacheOperationDuration("user_get", time.Since(start))
	if err == nil {
		d.metrics.IncrementCacheHits()
		return cached, nil
	}
	if errors.Is(err, custom_errors.ErrCacheMiss) {
		d.metrics.IncrementCacheMisses()
	}

	me, err := d.client.GetMe(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.userCache.SetMe(ctx, me); err != nil {
		d.log.Warn("Failed to cache user profile", slog.String("error", err.Error()))
	}
	return me, nil
}

// InvalidateSession drops every cached value tied to the signed-in user.
// The keys are not user-scoped, so logout must clear them or the next
// account would be served the previous one's profile and first feed page.
func (d *ClientCacheDecorator) InvalidateSession(ctx context.Context) {
	if err := d.userCache.DeleteMe(ctx); err != nil {
		d.log.Warn("Failed to invalidate cached user profile", slog.String("error", err.Error()))
	}
	d.invalidateFirstPage(ctx)
}

func (d *ClientCacheDecorator) invalidateFirstPage(ctx context.Context) {
	if err := d.pageCache.DeletePage(ctx, 1); err != nil {
		d.log.Warn("Failed to invalidate feed page cache", slog.String("error", err.Error()))
	}
}
