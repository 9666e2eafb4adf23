package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Edit     key.Binding
	Execute  key.Binding
	Delete   key.Binding
	New      key.Binding
	Location key.Binding
	Search   key.Binding
	All      key.Binding
	Code     key.Binding
	Recent   key.Binding
	Toggle   key.Binding
	Reload   key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Edit, k.Execute, k.New, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Edit, k.Execute, k.Delete, k.New},
		{k.Location, k.Search, k.All, k.Code, k.Recent},
		{k.Toggle, k.Reload, k.Cancel, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "v"),
		key.WithHelp("enter", "view"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Execute: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "execute"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new file"),
	),
	Location: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "location"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	All: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "all files"),
	),
	Code: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "code files"),
	),
	Recent: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "recent"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "grid/list"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel requests"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
