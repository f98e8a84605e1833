package custom_errors

import "errors"

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrPostValidation       = errors.New("post validation failed")
	ErrForbidden            = errors.New("operation not permitted for this user")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrExternalServiceError = errors.New("external service error")
	ErrInvalidPayload       = errors.New("invalid event payload")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrMediaUploadFailed    = errors.New("media upload failed")

	ErrCacheMiss = errors.New("cache miss")

	ErrFeedClosed     = errors.New("feed is closed")
	ErrFeedNotLoaded  = errors.New("feed has not completed its initial load")
	ErrFetchInFlight  = errors.New("a fetch is already in flight")
	ErrNoMorePosts    = errors.New("no more posts available")
	ErrChannelClosed  = errors.New("push channel is closed")
	ErrReconnectLimit = errors.New("push channel reconnect attempts exhausted")
)
