package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"feedwatch/internal/feed"
	"feedwatch/internal/model"
)

// Messages produced by commands. Every service call runs inside a tea.Cmd
// and reports back through one of these, keeping Update single-threaded.

type signInResultMsg struct {
	user *model.User
	err  error
}

type restoreResultMsg struct {
	user *model.User
	err  error
}

type feedLoadedMsg struct {
	initial bool
	err     error
}

type homeFeedOpenedMsg struct {
	feed *feed.Feed
	err  error
}

type profileOpenedMsg struct {
	feed *feed.Feed
	err  error
}

type postSavedMsg struct {
	post *model.Post
	err  error
}

type postDeletedMsg struct {
	id  string
	err error
}

type sessionExpiredMsg struct{}

// SessionExpiredMsg lets the wiring layer inject the forced-logout signal
// from the service's session-expiry callback.
func SessionExpiredMsg() tea.Msg { return sessionExpiredMsg{} }

type backToLoginMsg struct{}

type retryReadyMsg struct{}

type refreshTickMsg time.Time
