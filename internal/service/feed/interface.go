package feed_service

import (
	"context"

	"feedwatch/internal/feed"
	"feedwatch/internal/model"
	"feedwatch/internal/push"
)

// PushChannel is the slice of push.Channel the service needs. Logout closes
// the current channel; the next sign-in gets a fresh one from the factory.
//
//go:generate mockery --name PushChannel --dir . --output ../../../mocks/push --outpkg push_mock --filename channel.go
type PushChannel interface {
	Open(ctx context.Context) error
	Subscribe(handler push.Handler) (string, error)
	Unsubscribe(id string)
	Close() error
}

type ChannelFactory func() PushChannel

type Service interface {
	SignIn(ctx context.Context, username, password string) (*model.User, error)
	Restore(ctx context.Context) (*model.User, error)
	Me(ctx context.Context) (*model.User, error)

	OpenHomeFeed(ctx context.Context) (*feed.Feed, error)
	OpenProfileFeed(ctx context.Context, userID string) (*feed.Feed, error)
	CloseFeed(f *feed.Feed)

	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error

	Logout() error
	Close()
}
