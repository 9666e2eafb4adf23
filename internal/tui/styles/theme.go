package styles

import (
	"nexus/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of styles the TUI renders with.
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Header     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Code       lipgloss.Style
	Muted      lipgloss.Style
	Help       lipgloss.Style
	Info       lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Modal      lipgloss.Style
	Card       lipgloss.Style
	CardActive lipgloss.Style
}

// Theme holds the active styles.
var Theme = New("default")

// Use switches the active theme.
func Use(name string) {
	Theme = New(name)
}

// New builds styles from a named color theme.
func New(name string) Styles {
	c := config.GetTheme(name)
	color := func(key string) lipgloss.Color { return lipgloss.Color(c[key]) }

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(color("primary")).
			MarginBottom(1),
		Header: lipgloss.NewStyle().
			Foreground(color("info")),
		Selected: lipgloss.NewStyle().
			Foreground(color("success")).
			Bold(true),
		Unselected: lipgloss.NewStyle(),
		Code: lipgloss.NewStyle().
			Foreground(color("info")),
		Muted: lipgloss.NewStyle().
			Foreground(color("muted")),
		Help: lipgloss.NewStyle().
			Foreground(color("muted")),
		Info: lipgloss.NewStyle().
			Foreground(color("info")),
		Success: lipgloss.NewStyle().
			Foreground(color("success")),
		Warning: lipgloss.NewStyle().
			Foreground(color("warning")),
		Error: lipgloss.NewStyle().
			Foreground(color("error")).
			Bold(true),
		Modal: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color("border")),
		Card: lipgloss.NewStyle().
			Width(22).
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(color("muted")),
		CardActive: lipgloss.NewStyle().
			Width(22).
			Padding(0, 1).
			Border(lipgloss.ThickBorder()).
			BorderForeground(color("primary")),
	}
}
