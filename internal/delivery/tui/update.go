package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"feedwatch/internal/custom_errors"
	"feedwatch/internal/feed"
	"feedwatch/internal/model"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.teardown()
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case refreshTickMsg:
		// Push events mutate the feeds off the Update loop; the tick makes
		// those changes visible without any other message arriving.
		m.clampCursor()
		return m, refreshTick()

	case restoreResultMsg:
		return m.handleRestore(msg)

	case signInResultMsg:
		return m.handleSignIn(msg)

	case feedLoadedMsg:
		return m.handleFeedLoaded(msg)

	case homeFeedOpenedMsg:
		return m.handleHomeFeedOpened(msg)

	case profileOpenedMsg:
		return m.handleProfileOpened(msg)

	case retryReadyMsg:
		f := m.activeFeed()
		if f == nil || f.Err() == nil {
			return m, nil
		}
		return m, func() tea.Msg {
			return feedLoadedMsg{initial: f.State() != feed.StateFailedMore, err: f.Retry(context.Background())}
		}

	case postSavedMsg:
		return m.handlePostSaved(msg)

	case postDeletedMsg:
		if msg.err != nil && !errors.Is(msg.err, custom_errors.ErrUnauthenticated) {
			m.banner = "delete failed: " + msg.err.Error()
		}
		return m, nil

	case sessionExpiredMsg:
		m.banner = "session expired, returning to login"
		m.sessionEnding = true
		return m, sessionExpiredRedirect()

	case backToLoginMsg:
		m.resetToLogin()
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case LoginView:
		return m.handleLoginKey(msg)
	case ComposeView:
		return m.handleComposeKey(msg)
	default:
		return m.handleFeedKey(msg)
	}
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		m.login.focused = (m.login.focused + 1) % 2
		if m.login.focused == 0 {
			m.login.username.Focus()
			m.login.password.Blur()
		} else {
			m.login.password.Focus()
			m.login.username.Blur()
		}
		return m, nil

	case tea.KeyEnter:
		if m.login.signing {
			return m, nil
		}
		username := m.login.username.Value()
		password := m.login.password.Value()
		if username == "" || password == "" {
			m.login.err = "username and password are required"
			return m, nil
		}
		m.login.signing = true
		m.login.err = ""
		return m, m.signInCmd(username, password)
	}

	var cmd tea.Cmd
	if m.login.focused == 0 {
		m.login.username, cmd = m.login.username.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.activeFeed()
	if f == nil {
		return m, nil
	}
	posts := f.Snapshot()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(posts)-1 {
			m.cursor++
		}
		// Reaching the last rendered item is the page-advance trigger, the
		// terminal stand-in for the original's visibility observer. The feed
		// itself refuses when a fetch is already in flight.
		if m.cursor >= len(posts)-1 && !f.NoMore() && f.State() == feed.StateReady {
			return m, m.loadFeedCmd(f, false)
		}
		return m, nil

	case "r":
		if f.Err() != nil {
			return m, m.retryAfterBackoffCmd(f)
		}
		return m, nil

	case "n":
		m.compose = m.newComposeForm("", nil)
		m.mode = ComposeView
		return m, nil

	case "e":
		if m.mode != ProfileView || m.cursor >= len(posts) {
			return m, nil
		}
		m.compose = m.newComposeForm(posts[m.cursor].ID, posts[m.cursor])
		m.mode = ComposeView
		return m, nil

	case "d":
		if m.mode != ProfileView || m.cursor >= len(posts) {
			return m, nil
		}
		return m, m.deletePostCmd(posts[m.cursor].ID)

	case "p":
		if m.mode == FeedView && m.me != nil {
			return m, m.openProfileCmd(m.me.ID)
		}
		return m, nil

	case "h":
		if m.mode == ProfileView {
			m.closeProfile()
			m.mode = FeedView
			m.cursor = 0
		}
		return m, nil

	case "q":
		if m.mode == ProfileView {
			m.closeProfile()
			m.mode = FeedView
			m.cursor = 0
			return m, nil
		}
		m.teardown()
		return m, tea.Quit

	case "L":
		m.logout()
		m.resetToLogin()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = m.composeReturnMode()
		return m, nil

	case tea.KeyTab:
		if m.compose.content.Focused() {
			m.compose.content.Blur()
			m.compose.mediaURL.Focus()
		} else {
			m.compose.mediaURL.Blur()
			m.compose.content.Focus()
		}
		return m, nil

	case tea.KeyCtrlT:
		// Cycle the attachment type for the optional media URL.
		switch m.compose.mediaType {
		case model.MediaTypeImage:
			m.compose.mediaType = model.MediaTypeVideo
		default:
			m.compose.mediaType = model.MediaTypeImage
		}
		return m, nil

	case tea.KeyCtrlS:
		if m.compose.saving || m.compose.content.Value() == "" {
			return m, nil
		}
		m.compose.saving = true
		m.compose.err = ""
		return m, m.savePostCmd(m.compose)
	}

	var cmd tea.Cmd
	if m.compose.content.Focused() {
		m.compose.content, cmd = m.compose.content.Update(msg)
	} else {
		m.compose.mediaURL, cmd = m.compose.mediaURL.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleRestore(msg restoreResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// No resumable session; stay on the login screen.
		return m, nil
	}
	m.me = msg.user
	return m, m.enterFeed()
}

func (m *Model) handleSignIn(msg signInResultMsg) (tea.Model, tea.Cmd) {
	m.login.signing = false
	if msg.err != nil {
		if errors.Is(msg.err, custom_errors.ErrInvalidCredentials) {
			m.login.err = "invalid username or password"
		} else {
			m.login.err = "sign-in failed: " + msg.err.Error()
		}
		return m, nil
	}
	m.me = msg.user
	return m, m.enterFeed()
}

func (m *Model) enterFeed() tea.Cmd {
	return func() tea.Msg {
		f, err := m.service.OpenHomeFeed(context.Background())
		return homeFeedOpenedMsg{feed: f, err: err}
	}
}

func (m *Model) handleHomeFeedOpened(msg homeFeedOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || msg.feed == nil {
		m.login.err = "failed to open feed"
		return m, nil
	}
	m.homeFeed = msg.feed
	m.mode = FeedView
	m.cursor = 0
	return m, m.loadFeedCmd(m.homeFeed, true)
}

func (m *Model) handleFeedLoaded(msg feedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		m.banner = ""
		m.clampCursor()
		return m, nil
	}

	if errors.Is(msg.err, custom_errors.ErrUnauthenticated) {
		return m, func() tea.Msg { return sessionExpiredMsg{} }
	}
	if errors.Is(msg.err, custom_errors.ErrFetchInFlight) || errors.Is(msg.err, custom_errors.ErrNoMorePosts) {
		return m, nil
	}

	f := m.activeFeed()
	if f != nil && f.Err() != nil {
		m.log.Warn("Feed fetch failed", slog.Int("attempt", f.Attempts()), slog.String("error", msg.err.Error()))
	}
	return m, nil
}

func (m *Model) handleProfileOpened(msg profileOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.feed == nil {
		if msg.err != nil {
			m.banner = "failed to open profile: " + msg.err.Error()
		}
		return m, nil
	}

	m.profileFeed = msg.feed
	m.mode = ProfileView
	m.cursor = 0
	return m.handleFeedLoaded(feedLoadedMsg{initial: true, err: msg.err})
}

func (m *Model) handlePostSaved(msg postSavedMsg) (tea.Model, tea.Cmd) {
	m.compose.saving = false
	if msg.err != nil {
		if errors.Is(msg.err, custom_errors.ErrUnauthenticated) {
			return m, func() tea.Msg { return sessionExpiredMsg{} }
		}
		if errors.Is(msg.err, custom_errors.ErrMediaUploadFailed) {
			// Media failure never blocks the text; surface it and keep the
			// compose screen open for a text-only retry.
			m.compose.err = "media attachment failed, post text preserved"
			return m, nil
		}
		m.compose.err = msg.err.Error()
		return m, nil
	}

	m.mode = m.composeReturnMode()
	m.cursor = 0
	return m, nil
}

func (m *Model) composeReturnMode() ViewMode {
	if m.profileFeed != nil {
		return ProfileView
	}
	return FeedView
}

func (m *Model) newComposeForm(editID string, post *model.Post) composeForm {
	form := composeForm{
		content:  m.compose.content,
		mediaURL: m.compose.mediaURL,
		editID:   editID,
	}
	form.content.Reset()
	form.mediaURL.Reset()
	form.mediaType = model.MediaTypeImage

	if post != nil {
		form.content.SetValue(post.Content)
		form.mediaURL.SetValue(post.MediaURL)
		if post.MediaType != model.MediaTypeNone {
			form.mediaType = post.MediaType
		}
	}
	form.content.Focus()
	return form
}

func (m *Model) clampCursor() {
	f := m.activeFeed()
	if f == nil {
		return
	}
	if n := len(f.Snapshot()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

func (m *Model) closeProfile() {
	if m.profileFeed != nil {
		m.service.CloseFeed(m.profileFeed)
		m.profileFeed = nil
	}
}

func (m *Model) logout() {
	if err := m.service.Logout(); err != nil {
		m.log.Warn("Logout failed", slog.String("error", err.Error()))
	}
}

func (m *Model) teardown() {
	m.closeProfile()
	if m.homeFeed != nil {
		m.service.CloseFeed(m.homeFeed)
		m.homeFeed = nil
	}
}

func (m *Model) resetToLogin() {
	m.teardown()
	m.me = nil
	m.mode = LoginView
	m.cursor = 0
	m.sessionEnding = false
	m.banner = ""
	m.login.signing = false
	m.login.password.Reset()
	m.login.username.Focus()
	m.login.password.Blur()
	m.login.focused = 0
}
