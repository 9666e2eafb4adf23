package components

import (
	"nexus/internal/session"
	"nexus/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type StatusBar struct {
	notice  session.Notice
	has     bool
	spinner spinner.Model
	loading bool
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Theme.Help

	return &StatusBar{spinner: s}
}

// SetLoading starts or stops the spinner. The returned command drives the
// spinner and is nil unless loading just started.
func (s *StatusBar) SetLoading(loading bool) tea.Cmd {
	start := loading && !s.loading
	s.loading = loading
	if start {
		return s.spinner.Tick
	}
	return nil
}

func (s *StatusBar) Loading() bool {
	return s.loading
}

func (s *StatusBar) SetNotice(n session.Notice) {
	s.notice = n
	s.has = true
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *StatusBar) View() string {
	text := ""
	if s.has {
		text = noticeStyle(s.notice.Level).Render(s.notice.Message)
	}
	if s.loading {
		return s.spinner.View() + " " + text
	}
	return text
}

func noticeStyle(l session.Level) lipgloss.Style {
	switch l {
	case session.LevelSuccess:
		return styles.Theme.Success
	case session.LevelWarning:
		return styles.Theme.Warning
	case session.LevelError:
		return styles.Theme.Error
	default:
		return styles.Theme.Info
	}
}
