// Package tui is the interactive terminal front end. The Model maps keys to
// app commands, runs the resulting tasks as tea.Cmds and applies their
// events back on the bubbletea update loop, which makes that loop the only
// goroutine touching the controller.
package tui

import (
	"context"
	"fmt"

	"nexus/internal/app"
	"nexus/internal/catalog"
	"nexus/internal/client"
	"nexus/internal/execution"
	"nexus/internal/session"
	"nexus/internal/tui/common"
	"nexus/internal/tui/components"
	"nexus/internal/tui/messages"
	"nexus/internal/tui/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	ctx  context.Context
	ctrl *app.Controller

	mode      common.Mode
	cursor    int
	locCursor int
	showHelp  bool
	width     int
	height    int

	search textinput.Model
	form   *components.CreateForm
	editor textarea.Model
	viewer viewport.Model
	status *components.StatusBar
	help   help.Model

	// Last synced state, used to detect transitions.
	active      session.ActiveView
	listingPath string
	notice      session.Notice
}

func New(ctx context.Context, ctrl *app.Controller) *Model {
	search := textinput.New()
	search.Placeholder = "Search files..."
	search.Prompt = "🔍 "
	search.Width = 40

	editor := textarea.New()
	editor.SetWidth(76)
	editor.SetHeight(16)

	h := help.New()
	h.ShowAll = true

	return &Model{
		ctx:    ctx,
		ctrl:   ctrl,
		mode:   common.Normal,
		width:  80,
		height: 24,
		search: search,
		form:   components.NewCreateForm(),
		editor: editor,
		viewer: viewport.New(76, 16),
		status: components.NewStatusBar(),
		help:   h,
	}
}

// Run starts the TUI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, ctrl *app.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.dispatch(app.Reload{})
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewer.Width = max(20, msg.Width-8)
		m.viewer.Height = max(5, msg.Height-14)
		m.editor.SetWidth(max(20, msg.Width-8))
		m.editor.SetHeight(max(5, msg.Height-14))
		m.help.Width = msg.Width
		return m, nil
	case messages.EventMsg:
		return m, m.run(m.ctrl.Apply(msg.Event))
	case spinner.TickMsg:
		return m, m.status.Update(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.Dispatch(app.Cancel{})
			return m, tea.Quit
		}
		if m.mode == common.Search {
			return m, m.handleSearchKey(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

// dispatch sends cmd to the controller and schedules its request.
func (m *Model) dispatch(cmd app.Command) tea.Cmd {
	return m.run(m.ctrl.Dispatch(cmd))
}

// run wraps task in a tea.Cmd whose message is applied back in Update,
// then resyncs the widgets with the state.
func (m *Model) run(task app.Task) tea.Cmd {
	var cmds []tea.Cmd
	if task != nil {
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg {
			return messages.EventMsg{Event: task(ctx)}
		})
	}
	cmds = append(cmds, m.sync())
	return tea.Batch(cmds...)
}

// sync reflects state transitions in the widgets.
func (m *Model) sync() tea.Cmd {
	s := m.ctrl.State()

	if s.Active != m.active {
		switch s.Active {
		case session.ViewCreate:
			if m.active != session.ViewOverwrite && m.active != session.ViewLocation {
				m.form.Reset()
			}
		case session.ViewEdit:
			m.editor.SetValue(s.EditContent)
			m.editor.Focus()
		case session.ViewContent:
			m.viewer.SetContent(s.ViewContent)
			m.viewer.GotoTop()
		case session.ViewLocation:
			m.locCursor = 0
		}
		if m.active == session.ViewEdit {
			m.editor.Blur()
		}
		m.active = s.Active
	}

	switch s.Active {
	case session.ViewCreate:
		m.form.Load(s.Form)
	case session.ViewExecute:
		m.viewer.SetContent(m.ctrl.Execution().Output())
	case session.ViewLocation:
		if s.Listing.CurrentPath != m.listingPath {
			m.locCursor = 0
		}
	}
	m.listingPath = s.Listing.CurrentPath

	if n := len(s.Visible()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	if n, ok := s.LastNotice(); ok && n != m.notice {
		m.notice = n
		m.status.SetNotice(n)
	}
	return m.status.SetLoading(m.ctrl.Pending() > 0)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter":
		m.mode = common.Normal
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	return tea.Batch(cmd, m.dispatch(app.Search{Query: m.search.Value()}))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.ctrl.State()
	k := msg.String()

	switch s.Active {
	case session.ViewNone:
		return m.handleBrowseKey(msg)

	case session.ViewCreate:
		switch k {
		case "esc":
			return m.dispatch(app.Close{})
		case "ctrl+s":
			return tea.Batch(m.dispatch(app.UpdateCreateForm{Form: m.form.Values()}), m.dispatch(app.CreateFile{}))
		case "ctrl+l":
			return tea.Batch(m.dispatch(app.UpdateCreateForm{Form: m.form.Values()}), m.dispatch(app.OpenLocation{}))
		}
		cmd := m.form.Update(msg)
		return tea.Batch(cmd, m.dispatch(app.UpdateCreateForm{Form: m.form.Values()}))

	case session.ViewOverwrite:
		switch k {
		case "y", "enter":
			return m.dispatch(app.ConfirmOverwrite{})
		case "n", "esc":
			return m.dispatch(app.CancelOverwrite{})
		}

	case session.ViewEdit:
		switch k {
		case "esc":
			return m.dispatch(app.Close{})
		case "ctrl+s":
			return m.dispatch(app.SaveEdit{Content: m.editor.Value()})
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return cmd

	case session.ViewContent:
		switch k {
		case "esc", "q":
			return m.dispatch(app.Close{})
		}
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return cmd

	case session.ViewExecute:
		switch k {
		case "c":
			return m.dispatch(app.Execute{Action: client.ActionCompile})
		case "r":
			return m.dispatch(app.Execute{Action: client.ActionRun})
		case "b":
			return m.dispatch(app.Execute{Action: client.ActionBoth})
		case "esc", "q":
			return m.dispatch(app.Close{})
		}
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return cmd

	case session.ViewLocation:
		rows := len(s.Listing.Subdirectories) + 1
		switch {
		case key.Matches(msg, keys.Up):
			m.locCursor = max(0, m.locCursor-1)
		case key.Matches(msg, keys.Down):
			m.locCursor = min(rows-1, m.locCursor+1)
		case k == "enter" || k == "right" || k == "l":
			if m.locCursor == 0 {
				return m.dispatch(app.NavigateParent{})
			}
			return m.dispatch(app.Navigate{Dir: s.Listing.Subdirectories[m.locCursor-1]})
		case k == "backspace" || k == "left" || k == "h":
			return m.dispatch(app.NavigateParent{})
		case k == "s":
			return m.dispatch(app.SelectLocation{})
		case k == "esc" || k == "q":
			return m.dispatch(app.Close{})
		}

	case session.ViewDelete:
		switch k {
		case "y":
			return m.dispatch(app.ConfirmDelete{})
		case "n", "esc":
			return m.dispatch(app.Close{})
		}
	}
	return nil
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	s := m.ctrl.State()
	visible := s.Visible()
	cols := m.columns()

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, keys.Down):
		if m.cursor+cols < len(visible) {
			m.cursor += cols
		}
	case key.Matches(msg, keys.Left):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, keys.Right):
		m.cursor = min(max(0, len(visible)-1), m.cursor+1)
	case key.Matches(msg, keys.Open):
		if f, ok := m.selected(); ok {
			return m.dispatch(app.OpenView{Name: f.Name})
		}
	case key.Matches(msg, keys.Edit):
		if f, ok := m.selected(); ok {
			return m.dispatch(app.OpenEdit{Name: f.Name})
		}
	case key.Matches(msg, keys.Execute):
		if f, ok := m.selected(); ok {
			if !f.IsCode {
				m.status.SetNotice(session.Notice{Level: session.LevelWarning, Message: fmt.Sprintf("%s is not a code file", f.Name)})
				return nil
			}
			return m.dispatch(app.OpenExecute{Name: f.Name})
		}
	case key.Matches(msg, keys.Delete):
		if f, ok := m.selected(); ok {
			return m.dispatch(app.DeleteFile{Name: f.Name})
		}
	case key.Matches(msg, keys.New):
		return m.dispatch(app.OpenCreate{})
	case key.Matches(msg, keys.Location):
		return m.dispatch(app.OpenLocation{})
	case key.Matches(msg, keys.Search):
		m.mode = common.Search
		return m.search.Focus()
	case key.Matches(msg, keys.All):
		m.cursor = 0
		return m.dispatch(app.SetSection{Section: catalog.SectionAll})
	case key.Matches(msg, keys.Code):
		m.cursor = 0
		return m.dispatch(app.SetSection{Section: catalog.SectionCode})
	case key.Matches(msg, keys.Recent):
		m.cursor = 0
		return m.dispatch(app.SetSection{Section: catalog.SectionRecent})
	case key.Matches(msg, keys.Toggle):
		mode := catalog.ViewList
		if s.ViewMode == catalog.ViewList {
			mode = catalog.ViewGrid
		}
		return m.dispatch(app.SetViewMode{Mode: mode})
	case key.Matches(msg, keys.Reload):
		return m.dispatch(app.Reload{})
	case key.Matches(msg, keys.Cancel):
		if m.ctrl.Pending() > 0 {
			return m.dispatch(app.Cancel{})
		}
		if s.Query != "" {
			m.search.SetValue("")
			return m.dispatch(app.Search{})
		}
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Quit):
		m.ctrl.Dispatch(app.Cancel{})
		return tea.Quit
	}
	return nil
}

func (m *Model) selected() (catalog.FileEntry, bool) {
	visible := m.ctrl.State().Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return catalog.FileEntry{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) columns() int {
	fl := components.NewFileList()
	fl.SetMode(m.ctrl.State().ViewMode)
	fl.SetWidth(m.width - 4)
	return fl.Columns()
}

// Getters
func (m *Model) State() *session.State {
	return m.ctrl.State()
}

func (m *Model) Execution() *execution.Controller {
	return m.ctrl.Execution()
}

func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) LocationCursor() int {
	return m.locCursor
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) Loading() bool {
	return m.status.Loading()
}

func (m *Model) Width() int {
	return m.width - 4
}

func (m *Model) SearchView() string {
	return m.search.View()
}

func (m *Model) FormView() string {
	return m.form.View()
}

func (m *Model) EditorView() string {
	return m.editor.View()
}

func (m *Model) ContentView() string {
	return m.viewer.View()
}

func (m *Model) StatusView() string {
	return m.status.View()
}

func (m *Model) HelpView() string {
	return m.help.View(keys)
}
