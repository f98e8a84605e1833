package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"feedwatch/internal/feed"
	"feedwatch/internal/model"
)

func (m *Model) View() string {
	var body string
	switch m.mode {
	case LoginView:
		body = m.loginView()
	case ComposeView:
		body = m.composeView()
	case ProfileView:
		body = m.feedView(m.profileFeed, "profile")
	default:
		body = m.feedView(m.homeFeed, "feed")
	}

	var b strings.Builder
	b.WriteString(m.statusBar())
	b.WriteString("\n\n")
	if m.banner != "" {
		b.WriteString(bannerStyle.Render(m.banner))
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	return b.String()
}

func (m *Model) statusBar() string {
	left := titleStyle.Render("feedwatch")

	var user string
	if m.me != nil {
		user = "@" + m.me.Username
	} else {
		user = "signed out"
	}

	var keys string
	switch m.mode {
	case LoginView:
		keys = "tab: switch field · enter: sign in · ctrl+c: quit"
	case ComposeView:
		keys = "tab: field · ctrl+t: media type · ctrl+s: save · esc: cancel"
	case ProfileView:
		keys = "j/k: move · n: new · e: edit · d: delete · h: feed · L: logout"
	default:
		keys = "j/k: move · n: new · p: profile · r: retry · L: logout · q: quit"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		left, "  ",
		statusBarStyle.Render(user), "  ",
		helpStyle.Render(keys))
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.login.username.View())
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")

	if m.login.signing {
		b.WriteString(m.spinner.View())
		b.WriteString(" signing in...")
	} else if m.login.err != "" {
		b.WriteString(errorStyle.Render(m.login.err))
	}
	return b.String()
}

func (m *Model) composeView() string {
	var b strings.Builder
	if m.compose.editID != "" {
		b.WriteString(titleStyle.Render("Edit post"))
	} else {
		b.WriteString(titleStyle.Render("New post"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.compose.content.View())
	b.WriteString("\n")
	b.WriteString(m.compose.mediaURL.View())
	b.WriteString("\n")
	b.WriteString(mediaTagStyle.Render(fmt.Sprintf("attachment type: %s", m.compose.mediaType)))
	b.WriteString("\n\n")

	if m.compose.saving {
		b.WriteString(m.spinner.View())
		b.WriteString(" saving...")
	} else if m.compose.err != "" {
		b.WriteString(errorStyle.Render(m.compose.err))
	}
	return b.String()
}

func (m *Model) feedView(f *feed.Feed, title string) string {
	if f == nil {
		return m.spinner.View() + " opening " + title + "..."
	}

	posts := f.Snapshot()
	state := f.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch state {
	case feed.StateLoadingInitial:
		b.WriteString(m.spinner.View())
		b.WriteString(" loading posts...")
		return b.String()
	case feed.StateFailedInitial:
		b.WriteString(errorStyle.Render(fmt.Sprintf("failed to load feed (attempt %d): %v", f.Attempts(), f.Err())))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("press r to retry in %s", f.RetryDelay())))
		return b.String()
	}

	if len(posts) == 0 {
		b.WriteString(endOfFeedStyle.Render("nothing here yet"))
		return b.String()
	}

	visible := m.visibleWindow(len(posts))
	for i := visible.start; i < visible.end; i++ {
		b.WriteString(m.renderPost(posts[i], i == m.cursor))
		b.WriteString("\n")
	}

	switch {
	case state == feed.StateLoadingMore:
		b.WriteString(m.spinner.View())
		b.WriteString(" loading more...")
	case state == feed.StateFailedMore:
		b.WriteString(errorStyle.Render(fmt.Sprintf("load more failed (attempt %d)", f.Attempts())))
		b.WriteString(helpStyle.Render("  press r to retry"))
	case f.NoMore():
		b.WriteString(endOfFeedStyle.Render("— end of feed —"))
	}
	return b.String()
}

type window struct {
	start, end int
}

// visibleWindow keeps the cursor on screen for long lists.
func (m *Model) visibleWindow(total int) window {
	// Rough rows-per-post estimate against the terminal height.
	capacity := (m.height - 6) / 3
	if capacity < 3 {
		capacity = 3
	}
	if total <= capacity {
		return window{0, total}
	}

	start := m.cursor - capacity/2
	if start < 0 {
		start = 0
	}
	end := start + capacity
	if end > total {
		end = total
		start = end - capacity
	}
	return window{start, end}
}

func (m *Model) renderPost(p *model.Post, selected bool) string {
	header := authorStyle.Render("@"+p.Username) + " " + timestampStyle.Render(relativeTime(p.CreatedAt))

	lines := []string{header, p.Content}
	if p.MediaURL != "" {
		lines = append(lines, mediaTagStyle.Render(fmt.Sprintf("[%s] %s", p.MediaType, p.MediaURL)))
	}

	block := strings.Join(lines, "\n")
	if selected {
		return cursorStyle.Render(block)
	}
	return block
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
