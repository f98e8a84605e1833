package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"feedwatch/internal/backoff"
	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
	"feedwatch/internal/metrics"
	"feedwatch/internal/model"
)

type State int

const (
	StateIdle State = iota
	StateLoadingInitial
	StateReady
	StateFailedInitial
	StateLoadingMore
	StateFailedMore
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingInitial:
		return "loading_initial"
	case StateReady:
		return "ready"
	case StateFailedInitial:
		return "failed_initial"
	case StateLoadingMore:
		return "loading_more"
	case StateFailedMore:
		return "failed_more"
	}
	return "unknown"
}

// Fetcher pulls one page from the REST API.
type Fetcher func(ctx context.Context, page, limit int) (*model.PostPage, error)

// Feed owns one reconciled post list. Pull-fetches are serialized (at most
// one in flight); push events may land at any time, including while a fetch
// is in flight, and are merged against the list as it stands at apply time.
type Feed struct {
	name    string
	fetch   Fetcher
	limit   int
	retry   backoff.Backoff
	log     *logger.Logger
	metrics metrics.Provider

	mu       sync.Mutex
	posts    []*model.Post
	state    State
	noMore   bool
	nextPage int
	inFlight bool
	loaded   bool
	closed   bool
	attempts int
	lastErr  error
}

func New(name string, fetch Fetcher, limit int, retry backoff.Backoff, log *logger.Logger, metrics metrics.Provider) *Feed {
	return &Feed{
		name:     name,
		fetch:    fetch,
		limit:    limit,
		retry:    retry,
		log:      log,
		metrics:  metrics,
		state:    StateIdle,
		nextPage: 1,
	}
}

// Load performs the initial fetch (or a retry of a failed one) and replaces
// the list wholesale on success.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return custom_errors.ErrFeedClosed
	}
	if f.inFlight {
		f.mu.Unlock()
		return custom_errors.ErrFetchInFlight
	}
	f.inFlight = true
	f.state = StateLoadingInitial
	f.mu.Unlock()

	page, err := f.fetch(ctx, 1, f.limit)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false

	if f.closed {
		// The owning screen was torn down mid-fetch; drop the result.
		return custom_errors.ErrFeedClosed
	}

	if err != nil {
		f.state = StateFailedInitial
		f.attempts++
		f.lastErr = err
		f.log.Warn("Initial feed load failed",
			slog.String("feed", f.name),
			slog.Int("attempt", f.attempts),
			slog.String("error", err.Error()))
		return err
	}

	f.posts = append([]*model.Post(nil), page.Posts...)
	f.state = StateReady
	f.loaded = true
	f.noMore = page.IsLast()
	f.nextPage = 2
	f.attempts = 0
	f.lastErr = nil
	f.metrics.SetFeedLength(f.name, len(f.posts))

	f.log.Debug("Initial feed load complete",
		slog.String("feed", f.name),
		slog.Int("posts", len(f.posts)),
		slog.Bool("no_more", f.noMore))
	return nil
}

// LoadMore advances one page. It refuses to run while another fetch is in
// flight and is suppressed once a short page marked the end of the feed.
// The merge re-checks ids against the current list, so pushes that landed
// during the fetch cannot be duplicated and deletes are not resurrected.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return custom_errors.ErrFeedClosed
	}
	if !f.loaded {
		f.mu.Unlock()
		return custom_errors.ErrFeedNotLoaded
	}
	if f.inFlight {
		f.mu.Unlock()
		return custom_errors.ErrFetchInFlight
	}
	if f.noMore {
		f.mu.Unlock()
		return custom_errors.ErrNoMorePosts
	}
	f.inFlight = true
	f.state = StateLoadingMore
	page := f.nextPage
	f.mu.Unlock()

	result, err := f.fetch(ctx, page, f.limit)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false

	if f.closed {
		return custom_errors.ErrFeedClosed
	}

	if err != nil {
		// Already-loaded posts stay; the failure is scoped to "load more".
		f.state = StateFailedMore
		f.attempts++
		f.lastErr = err
		f.log.Warn("Feed page advance failed",
			slog.String("feed", f.name),
			slog.Int("page", page),
			slog.Int("attempt", f.attempts),
			slog.String("error", err.Error()))
		return err
	}

	f.posts = MergePage(f.posts, result.Posts)
	f.state = StateReady
	f.noMore = result.IsLast()
	f.nextPage = page + 1
	f.attempts = 0
	f.lastErr = nil
	f.metrics.SetFeedLength(f.name, len(f.posts))
	return nil
}

// ApplyEvent merges one push event. Events are accepted in every state
// once the first load has completed, and dropped before that, including
// after a failed initial load whose retry will replace the list wholesale.
func (f *Feed) ApplyEvent(event *model.FeedEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || !f.loaded {
		return
	}

	f.posts = ApplyEvent(f.posts, event)
	f.metrics.SetFeedLength(f.name, len(f.posts))
}

// ApplyLocal merges a post the user just created or edited through this
// client, without waiting for the push echo.
func (f *Feed) ApplyLocal(event *model.FeedEvent) {
	f.ApplyEvent(event)
}

// Snapshot returns a copy of the current list, newest first.
func (f *Feed) Snapshot() []*model.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.Post(nil), f.posts...)
}

func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Feed) NoMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.noMore
}

// Attempts reports how many consecutive fetches have failed, the visible
// retry counter.
func (f *Feed) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// RetryDelay is the capped exponential wait before the next retry.
func (f *Feed) RetryDelay() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attempts == 0 {
		return 0
	}
	return f.retry.Delay(f.attempts)
}

// Retry re-issues whichever fetch last failed.
func (f *Feed) Retry(ctx context.Context) error {
	f.mu.Lock()
	state := f.state
	f.mu.Unlock()

	switch state {
	case StateFailedMore:
		return f.LoadMore(ctx)
	default:
		return f.Load(ctx)
	}
}

// Close marks the feed torn down: no further fetch result or push event will
// be applied.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
