package feed_service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"feedwatch/internal/backoff"
	api_client "feedwatch/internal/clients/api"
	auth_client "feedwatch/internal/clients/auth"
	"feedwatch/internal/custom_errors"
	"feedwatch/internal/feed"
	"feedwatch/internal/logger"
	"feedwatch/internal/metrics"
	"feedwatch/internal/model"
)

const (
	homeFeedName    = "home"
	profileFeedName = "profile"
)

// FeedService ties the REST client, the credential store, and the push
// channel together behind the operations the screens need. It owns the push
// subscription lifecycle for every feed it opens.
type FeedService struct {
	api        api_client.Client
	provider   auth_client.Provider
	creds      *auth_client.CredentialStore
	newChannel ChannelFactory
	retry      backoff.Backoff
	pageSize   int
	log        *logger.Logger
	metrics    metrics.Provider

	mu      sync.Mutex
	channel PushChannel
	subs    map[*feed.Feed]string
	expired func()
}

func NewFeedService(
	api api_client.Client,
	provider auth_client.Provider,
	creds *auth_client.CredentialStore,
	newChannel ChannelFactory,
	retry backoff.Backoff,
	pageSize int,
	log *logger.Logger,
	metrics metrics.Provider,
) *FeedService {
	return &FeedService{
		api:        api,
		provider:   provider,
		creds:      creds,
		newChannel: newChannel,
		retry:      retry,
		pageSize:   pageSize,
		log:        log,
		metrics:    metrics,
		subs:       make(map[*feed.Feed]string),
	}
}

// OnSessionExpired registers the callback fired after a 401/403 forced the
// local credential to be cleared. The UI shows the error first and redirects
// to login afterwards.
func (s *FeedService) OnSessionExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = fn
}

func (s *FeedService) SignIn(ctx context.Context, username, password string) (*model.User, error) {
	cred, err := s.provider.SignIn(ctx, username, password)
	if err != nil {
		s.log.Warn("Sign-in failed", slog.String("username", username), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.creds.Save(cred); err != nil {
		s.log.Error("Failed to persist credential", slog.String("error", err.Error()))
		return nil, err
	}

	return s.openSession(ctx)
}

// Restore resumes a previous session from the cached credential, if any.
func (s *FeedService) Restore(ctx context.Context) (*model.User, error) {
	if err := s.creds.Load(); err != nil {
		return nil, err
	}
	if s.creds.Credential() == nil {
		return nil, custom_errors.ErrUnauthenticated
	}
	return s.openSession(ctx)
}

func (s *FeedService) openSession(ctx context.Context) (*model.User, error) {
	me, err := s.api.GetMe(ctx)
	if err != nil {
		return nil, s.translate(err)
	}

	channel := s.newChannel()
	if err := channel.Open(ctx); err != nil {
		// The feed still works without live updates; pull-fetches carry it.
		s.log.Warn("Push channel unavailable, continuing without live updates",
			slog.String("error", err.Error()))
		channel = nil
	}

	s.mu.Lock()
	s.channel = channel
	s.mu.Unlock()

	s.metrics.SetServiceHealth(true)
	return me, nil
}

func (s *FeedService) Me(ctx context.Context) (*model.User, error) {
	me, err := s.api.GetMe(ctx)
	if err != nil {
		return nil, s.translate(err)
	}
	return me, nil
}

// OpenHomeFeed builds the main feed and wires it to the push channel. The
// caller triggers the initial Load and must hand the feed back through
// CloseFeed on unmount.
func (s *FeedService) OpenHomeFeed(ctx context.Context) (*feed.Feed, error) {
	f := feed.New(homeFeedName, s.fetchHome, s.pageSize, s.retry, s.log, s.metrics)
	s.attach(f, nil)
	return f, nil
}

// OpenProfileFeed builds a feed of one user's posts. Created events for
// other authors are filtered out before reconciliation; updates and deletes
// pass through and no-op when the post is not in the list.
func (s *FeedService) OpenProfileFeed(ctx context.Context, userID string) (*feed.Feed, error) {
	fetch := func(ctx context.Context, page, limit int) (*model.PostPage, error) {
		result, err := s.api.ListUserPosts(ctx, userID, page, limit)
		if err != nil {
			return nil, s.translate(err)
		}
		return result, nil
	}

	f := feed.New(profileFeedName, fetch, s.pageSize, s.retry, s.log, s.metrics)
	filter := func(event *model.FeedEvent) bool {
		if event.Type != model.EventPostCreated {
			return true
		}
		return event.Post != nil && event.Post.UserID == userID
	}
	s.attach(f, filter)
	return f, nil
}

func (s *FeedService) fetchHome(ctx context.Context, page, limit int) (*model.PostPage, error) {
	result, err := s.api.ListPosts(ctx, page, limit)
	if err != nil {
		return nil, s.translate(err)
	}
	return result, nil
}

func (s *FeedService) attach(f *feed.Feed, filter func(*model.FeedEvent) bool) {
	s.mu.Lock()
	channel := s.channel
	s.mu.Unlock()
	if channel == nil {
		return
	}

	id, err := channel.Subscribe(func(event *model.FeedEvent) {
		if filter != nil && !filter(event) {
			return
		}
		f.ApplyEvent(event)
	})
	if err != nil {
		s.log.Warn("Failed to subscribe feed to push channel", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	s.subs[f] = id
	s.mu.Unlock()
}

// CloseFeed unsubscribes the feed from the push channel and marks it torn
// down so in-flight fetch results are discarded.
func (s *FeedService) CloseFeed(f *feed.Feed) {
	if f == nil {
		return
	}
	f.Close()

	s.mu.Lock()
	id, ok := s.subs[f]
	channel := s.channel
	delete(s.subs, f)
	s.mu.Unlock()

	if ok && channel != nil {
		channel.Unsubscribe(id)
	}
}

// CreatePost submits the post and applies the server's copy to open feeds
// immediately. The push echo for the same id deduplicates.
func (s *FeedService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	created, err := s.api.CreatePost(ctx, post)
	if err != nil {
		return nil, s.translate(err)
	}

	s.applyLocal(&model.FeedEvent{Type: model.EventPostCreated, Post: created})
	return created, nil
}

func (s *FeedService) UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) (*model.Post, error) {
	updated, err := s.api.UpdatePost(ctx, id, post)
	if err != nil {
		return nil, s.translate(err)
	}

	s.applyLocal(&model.FeedEvent{Type: model.EventPostUpdated, Post: updated})
	return updated, nil
}

func (s *FeedService) DeletePost(ctx context.Context, id string) error {
	if err := s.api.DeletePost(ctx, id); err != nil {
		return s.translate(err)
	}

	s.applyLocal(&model.FeedEvent{Type: model.EventPostDeleted, Post: &model.Post{ID: id}})
	return nil
}

func (s *FeedService) applyLocal(event *model.FeedEvent) {
	s.mu.Lock()
	feeds := make([]*feed.Feed, 0, len(s.subs))
	for f := range s.subs {
		feeds = append(feeds, f)
	}
	s.mu.Unlock()

	for _, f := range feeds {
		f.ApplyLocal(event)
	}
}

// Close tears down feeds and the push channel without touching the cached
// credential, so a plain quit resumes the session next run.
func (s *FeedService) Close() {
	s.mu.Lock()
	channel := s.channel
	s.channel = nil
	for f := range s.subs {
		f.Close()
	}
	s.subs = make(map[*feed.Feed]string)
	s.mu.Unlock()

	if channel != nil {
		if err := channel.Close(); err != nil {
			s.log.Warn("Failed to close push channel", slog.String("error", err.Error()))
		}
	}
	s.metrics.SetServiceHealth(false)
}

// sessionCacheInvalidator is implemented by the cache decorator; a plain
// client has nothing to drop.
type sessionCacheInvalidator interface {
	InvalidateSession(ctx context.Context)
}

// Logout clears the cached credential, drops the session-scoped caches, and
// tears the push channel down. The channel reference is dropped so the next
// sign-in builds a fresh one.
func (s *FeedService) Logout() error {
	s.Close()

	if inv, ok := s.api.(sessionCacheInvalidator); ok {
		inv.InvalidateSession(context.Background())
	}

	if err := s.creds.Clear(); err != nil {
		s.log.Error("Failed to clear credential", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// translate funnels authorization failures into the forced-logout path: the
// credential is cleared, the channel is torn down, and the UI is notified.
func (s *FeedService) translate(err error) error {
	if !errors.Is(err, custom_errors.ErrUnauthenticated) {
		return err
	}

	s.log.Warn("Credential rejected by API, forcing logout")
	if logoutErr := s.Logout(); logoutErr != nil {
		s.log.Error("Forced logout failed", slog.String("error", logoutErr.Error()))
	}

	s.mu.Lock()
	expired := s.expired
	s.mu.Unlock()
	if expired != nil {
		expired()
	}
	return custom_errors.ErrUnauthenticated
}
