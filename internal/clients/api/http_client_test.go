package api_client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api_client "feedwatch/internal/clients/api"
	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
	"feedwatch/internal/metrics"
	"feedwatch/internal/model"
)

type staticTokens string

func (s staticTokens) Token() (string, error) { return string(s), nil }

type noTokens struct{}

func (noTokens) Token() (string, error) { return "", custom_errors.ErrUnauthenticated }

func newClient(t *testing.T, handler http.HandlerFunc) api_client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api_client.NewHTTPClient(server.URL, 5*time.Second, staticTokens("tok-123"), logger.New("test"), metrics.NewNoop())
}

func TestHTTPClient_ListPosts(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"posts": []map[string]any{
				{"id": "p1", "userId": "u1", "username": "ann", "content": "first"},
				{"id": "p2", "userId": "u2", "username": "bob", "content": "second"},
			},
		})
	})

	page, err := client.ListPosts(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Limit)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "p1", page.Posts[0].ID)
	assert.True(t, page.IsLast())
}

func TestHTTPClient_ListUserPosts(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "u7", r.URL.Query().Get("userId"))
		_ = json.NewEncoder(w).Encode(map[string]any{"posts": []map[string]any{}})
	})

	page, err := client.ListUserPosts(context.Background(), "u7", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestHTTPClient_CreatePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var dto model.CreatePostDTO
			require.NoError(t, json.NewDecoder(r.Body).Decode(&dto))
			assert.Equal(t, "hello", dto.Content)

			_ = json.NewEncoder(w).Encode(model.Post{ID: "p9", Content: dto.Content})
		})

		created, err := client.CreatePost(context.Background(), &model.CreatePostDTO{Content: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "p9", created.ID)
	})

	t.Run("ValidationFailsBeforeTheWire", func(t *testing.T) {
		called := false
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := client.CreatePost(context.Background(), &model.CreatePostDTO{Content: ""})
		assert.ErrorIs(t, err, custom_errors.ErrPostValidation)
		assert.False(t, called)

		// Media URL without a media type is rejected too.
		_, err = client.CreatePost(context.Background(), &model.CreatePostDTO{
			Content:  "hi",
			MediaURL: "https://cdn.example.com/a.png",
		})
		assert.ErrorIs(t, err, custom_errors.ErrPostValidation)
		assert.False(t, called)
	})
}

func TestHTTPClient_UpdatePost(t *testing.T) {
	content := "edited"
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/posts/p3", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.Post{ID: "p3", Content: content})
	})

	updated, err := client.UpdatePost(context.Background(), "p3", &model.UpdatePostDTO{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = client.UpdatePost(context.Background(), "", &model.UpdatePostDTO{Content: &content})
	assert.ErrorIs(t, err, custom_errors.ErrPostValidation)
}

func TestHTTPClient_DeletePost(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/posts/p4", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeletePost(context.Background(), "p4"))
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized forces logout error", status: http.StatusUnauthorized, wantErr: custom_errors.ErrUnauthenticated},
		{name: "forbidden forces logout error", status: http.StatusForbidden, wantErr: custom_errors.ErrUnauthenticated},
		{name: "not found", status: http.StatusNotFound, wantErr: custom_errors.ErrPostNotFound},
		{name: "media rejected", status: http.StatusUnprocessableEntity, wantErr: custom_errors.ErrMediaUploadFailed},
		{name: "server error", status: http.StatusInternalServerError, wantErr: custom_errors.ErrExternalServiceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.ListPosts(context.Background(), 1, 10)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := api_client.NewHTTPClient(server.URL, time.Second, staticTokens("tok"), logger.New("test"), metrics.NewNoop())
	_, err := client.ListPosts(context.Background(), 1, 10)
	assert.ErrorIs(t, err, custom_errors.ErrExternalServiceError)
}

func TestHTTPClient_MissingToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(server.Close)

	client := api_client.NewHTTPClient(server.URL, time.Second, noTokens{}, logger.New("test"), metrics.NewNoop())
	_, err := client.GetMe(context.Background())
	assert.ErrorIs(t, err, custom_errors.ErrUnauthenticated)
	assert.False(t, called)
}
