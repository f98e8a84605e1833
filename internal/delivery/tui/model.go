// Package tui composes the login, feed, profile, and compose screens over
// the feed service. It is deliberately thin: every list mutation happens in
// the reconciliation layer, and the screens only render snapshots.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"feedwatch/internal/feed"
	"feedwatch/internal/logger"
	"feedwatch/internal/model"
	feed_service "feedwatch/internal/service/feed"
)

// ViewMode determines which screen is active.
type ViewMode int

const (
	LoginView ViewMode = iota
	FeedView
	ProfileView
	ComposeView
)

// refreshInterval drives re-rendering of push-driven list changes.
const refreshInterval = 500 * time.Millisecond

// sessionExpiredDelay keeps the expiry banner visible before the redirect.
const sessionExpiredDelay = 2 * time.Second

type loginForm struct {
	username textinput.Model
	password textinput.Model
	focused  int
	signing  bool
	err      string
}

type composeForm struct {
	content   textarea.Model
	mediaURL  textinput.Model
	mediaType model.MediaType
	editID    string
	saving    bool
	err       string
}

type Model struct {
	service feed_service.Service
	log     *logger.Logger

	mode   ViewMode
	width  int
	height int

	me      *model.User
	spinner spinner.Model

	login   loginForm
	compose composeForm

	// Active feed screen state. The profile screen reuses the same
	// rendering with its own feed instance.
	homeFeed    *feed.Feed
	profileFeed *feed.Feed
	cursor      int

	banner        string
	sessionEnding bool
}

func New(service feed_service.Service, log *logger.Logger) *Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	content := textarea.New()
	content.Placeholder = "What's happening?"
	content.CharLimit = 2000

	mediaURL := textinput.New()
	mediaURL.Placeholder = "media url (optional)"
	mediaURL.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		service: service,
		log:     log,
		mode:    LoginView,
		spinner: sp,
		login:   loginForm{username: username, password: password},
		compose: composeForm{content: content, mediaURL: mediaURL},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.restoreCmd(),
		refreshTick(),
	)
}

// activeFeed returns the feed backing the current screen, nil on non-feed
// screens.
func (m *Model) activeFeed() *feed.Feed {
	switch m.mode {
	case FeedView:
		return m.homeFeed
	case ProfileView:
		return m.profileFeed
	}
	return nil
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m *Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.service.Restore(context.Background())
		return restoreResultMsg{user: user, err: err}
	}
}

func (m *Model) signInCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.service.SignIn(context.Background(), username, password)
		return signInResultMsg{user: user, err: err}
	}
}

func (m *Model) loadFeedCmd(f *feed.Feed, initial bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if initial {
			err = f.Load(context.Background())
		} else {
			err = f.LoadMore(context.Background())
		}
		return feedLoadedMsg{initial: initial, err: err}
	}
}

func (m *Model) retryAfterBackoffCmd(f *feed.Feed) tea.Cmd {
	delay := f.RetryDelay()
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return retryReadyMsg{}
	})
}

func (m *Model) openProfileCmd(userID string) tea.Cmd {
	return func() tea.Msg {
		f, err := m.service.OpenProfileFeed(context.Background(), userID)
		if err != nil {
			return profileOpenedMsg{err: err}
		}
		return profileOpenedMsg{feed: f, err: f.Load(context.Background())}
	}
}

func (m *Model) savePostCmd(form composeForm) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		content := form.content.Value()
		mediaURL := form.mediaURL.Value()

		if form.editID != "" {
			dto := &model.UpdatePostDTO{Content: &content}
			if mediaURL != "" {
				mt := form.mediaType
				dto.MediaURL = &mediaURL
				dto.MediaType = &mt
			}
			post, err := m.service.UpdatePost(ctx, form.editID, dto)
			return postSavedMsg{post: post, err: err}
		}

		dto := &model.CreatePostDTO{Content: content}
		if mediaURL != "" {
			dto.MediaURL = mediaURL
			dto.MediaType = form.mediaType
		}
		post, err := m.service.CreatePost(ctx, dto)
		return postSavedMsg{post: post, err: err}
	}
}

func (m *Model) deletePostCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.service.DeletePost(context.Background(), id)
		return postDeletedMsg{id: id, err: err}
	}
}

func sessionExpiredRedirect() tea.Cmd {
	return tea.Tick(sessionExpiredDelay, func(time.Time) tea.Msg {
		return backToLoginMsg{}
	})
}
