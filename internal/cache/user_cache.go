package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
	"feedwatch/internal/model"
)

const (
	userCacheKey = "user:me"
	userCacheTTL = 15 * time.Minute
)

// UserCache keeps the signed-in user's profile between screens.
type UserCache struct {
	client Client
	log    *logger.Logger
}

func NewUserCache(client Client, log *logger.Logger) *UserCache {
	return &UserCache{client: client, log: log}
}

func (u *UserCache) GetMe(ctx context.Context) (*model.User, error) {
	var user model.User
	err := u.client.Get(ctx, userCacheKey, &user)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		u.log.Error("Failed to get user from cache", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}
	return &user, nil
}

func (u *UserCache) SetMe(ctx context.Context, user *model.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	if err := u.client.Set(ctx, userCacheKey, user, userCacheTTL); err != nil {
		u.log.Error("Failed to set user cache", slog.String("error", err.Error()))
		return fmt.Errorf("failed to set user cache: %w", err)
	}
	return nil
}

func (u *UserCache) DeleteMe(ctx context.Context) error {
	if err := u.client.Delete(ctx, userCacheKey); err != nil {
		u.log.Error("Failed to delete user from cache", slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	return nil
}
