package api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
	"feedwatch/internal/metrics"
	"feedwatch/internal/model"
)

var validate = validator.New()

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logger.Logger
	metrics metrics.Provider
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger, metrics metrics.Provider) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
		metrics: metrics,
	}
}

func (c *HTTPClient) ListPosts(ctx context.Context, page, limit int) (*model.PostPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp model.PostPage
	if err := c.do(ctx, "list_posts", http.MethodGet, "/posts?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	resp.Page = page
	resp.Limit = limit
	return &resp, nil
}

func (c *HTTPClient) ListUserPosts(ctx context.Context, userID string, page, limit int) (*model.PostPage, error) {
	query := url.Values{}
	query.Set("userId", userID)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp model.PostPage
	if err := c.do(ctx, "list_user_posts", http.MethodGet, "/posts?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	resp.Page = page
	resp.Limit = limit
	return &resp, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	if err := validate.Struct(post); err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrPostValidation, err)
	}

	var created model.Post
	if err := c.do(ctx, "create_post", http.MethodPost, "/posts", post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) (*model.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing post id", custom_errors.ErrPostValidation)
	}
	if err := validate.Struct(post); err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrPostValidation, err)
	}

	var updated model.Post
	if err := c.do(ctx, "update_post", http.MethodPut, "/posts/"+url.PathEscape(id), post, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing post id", custom_errors.ErrPostValidation)
	}
	return c.do(ctx, "delete_post", http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) GetMe(ctx context.Context) (*model.User, error) {
	var me model.User
	if err := c.do(ctx, "get_me", http.MethodGet, "/users/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *HTTPClient) do(ctx context.Context, operation, method, path string, body, dest any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, body, dest)
	c.metrics.RecordAPIRequestDuration(operation, time.Since(start))

	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.IncrementAPIRequests(operation, status)
	return err
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token()
	if err != nil {
		return custom_errors.ErrUnauthenticated
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("API request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", custom_errors.ErrExternalServiceError, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Debug("Failed to close response body", slog.String("error", closeErr.Error()))
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// The sole server-driven trigger for forced logout.
		c.log.Warn("API rejected credential",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		return custom_errors.ErrUnauthenticated
	case resp.StatusCode == http.StatusNotFound:
		return custom_errors.ErrPostNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity:
		// Content is validated client-side before the wire call, so a 422
		// means the server rejected the attached media asset.
		return custom_errors.ErrMediaUploadFailed
	case resp.StatusCode >= 400:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error("API returned error status",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)))
		return fmt.Errorf("%w: unexpected status %d", custom_errors.ErrExternalServiceError, resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", custom_errors.ErrExternalServiceError, err)
	}
	return nil
}
