package api_client

import (
	"context"

	"feedwatch/internal/model"
)

// TokenSource supplies the bearer credential attached to every request.
type TokenSource interface {
	Token() (string, error)
}

//go:generate mockery --name Client --dir . --output ../../../mocks/api --outpkg api_mock --filename client.go
type Client interface {
	ListPosts(ctx context.Context, page, limit int) (*model.PostPage, error)
	ListUserPosts(ctx context.Context, userID string, page, limit int) (*model.PostPage, error)
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error
	GetMe(ctx context.Context) (*model.User, error)
}
