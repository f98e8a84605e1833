// Package push maintains the websocket connection that delivers post
// created/updated/deleted notifications. The connection is an explicitly
// owned handle: the session that opens it closes it, and a fresh login
// constructs a fresh Channel instead of reviving a stale one.
package push

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"feedwatch/internal/backoff"
	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
	"feedwatch/internal/metrics"
	"feedwatch/internal/model"
)

// Handler receives every well-formed feed event, in delivery order.
type Handler func(event *model.FeedEvent)

// TokenSource mirrors the API client's: the handshake carries the same
// bearer credential.
type TokenSource interface {
	Token() (string, error)
}

type Channel struct {
	url         string
	tokens      TokenSource
	dialer      *websocket.Dialer
	reconnect   backoff.Backoff
	maxAttempts int
	log         *logger.Logger
	metrics     metrics.Provider

	mu     sync.Mutex
	conn   *websocket.Conn
	subs   map[string]Handler
	opened bool
	closed bool
	err    error

	done chan struct{}
}

func NewChannel(url string, tokens TokenSource, reconnect backoff.Backoff, maxAttempts int, log *logger.Logger, metrics metrics.Provider) *Channel {
	return &Channel{
		url:         url,
		tokens:      tokens,
		dialer:      websocket.DefaultDialer,
		reconnect:   reconnect,
		maxAttempts: maxAttempts,
		log:         log,
		metrics:     metrics,
		subs:        make(map[string]Handler),
		done:        make(chan struct{}),
	}
}

// Open dials the channel and starts the read loop. It is a handshake only;
// event dispatch happens on the loop goroutine.
func (c *Channel) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return custom_errors.ErrChannelClosed
	}
	if c.opened {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = conn.Close()
		return custom_errors.ErrChannelClosed
	}
	c.conn = conn
	c.opened = true
	c.mu.Unlock()

	c.metrics.SetPushConnected(true)
	go c.readLoop(conn)
	return nil
}

func (c *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, err
		}
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		c.log.Warn("Push channel dial failed",
			slog.String("url", c.url),
			slog.String("error", err.Error()))
		return nil, err
	}
	return conn, nil
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.metrics.SetPushConnected(false)
			if c.isClosed() {
				return
			}
			c.log.Warn("Push channel read failed, reconnecting", slog.String("error", err.Error()))
			next, ok := c.redial()
			if !ok {
				return
			}
			conn = next
			continue
		}

		event, err := model.DecodeFeedEvent(data)
		if err != nil {
			// Malformed frames are dropped, never fatal.
			c.metrics.IncrementPushEventsDropped()
			c.log.Warn("Dropping malformed push event", slog.String("error", err.Error()))
			continue
		}

		c.metrics.IncrementPushEvents(string(event.Type))
		c.dispatch(event)
	}
}

// redial attempts a bounded, backed-off reconnect. On exhaustion the channel
// shuts itself down and records the terminal error.
func (c *Channel) redial() (*websocket.Conn, bool) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		select {
		case <-c.done:
			return nil, false
		case <-time.After(c.reconnect.Delay(attempt)):
		}

		c.metrics.IncrementPushReconnects()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		conn, err := c.dial(ctx)
		cancel()
		if err != nil {
			c.log.Warn("Push channel reconnect attempt failed",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", c.maxAttempts))
			continue
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			_ = conn.Close()
			return nil, false
		}
		c.conn = conn
		c.mu.Unlock()

		c.metrics.SetPushConnected(true)
		c.log.Info("Push channel reconnected", slog.Int("attempt", attempt))
		return conn, true
	}

	c.log.Error("Push channel reconnect attempts exhausted",
		slog.Int("max_attempts", c.maxAttempts))
	c.shutdown(custom_errors.ErrReconnectLimit)
	return nil, false
}

func (c *Channel) dispatch(event *model.FeedEvent) {
	c.mu.Lock()
	handlers := make([]Handler, 0, len(c.subs))
	for _, h := range c.subs {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Subscribe registers a handler and returns its subscription id.
func (c *Channel) Subscribe(handler Handler) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", custom_errors.ErrChannelClosed
	}

	id := uuid.NewString()
	c.subs[id] = handler
	return id, nil
}

func (c *Channel) Unsubscribe(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, id)
}

// Err reports why the channel stopped, nil while it is live.
func (c *Channel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Done is closed once the channel has shut down for any reason.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Close tears the connection down. Further Subscribe calls fail with
// ErrChannelClosed; a new login must construct a new Channel.
func (c *Channel) Close() error {
	c.shutdown(nil)
	return nil
}

func (c *Channel) shutdown(cause error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.err = cause
	conn := c.conn
	c.conn = nil
	c.subs = make(map[string]Handler)
	c.mu.Unlock()

	close(c.done)
	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}
	c.metrics.SetPushConnected(false)
}

func (c *Channel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
