package views

import (
	"fmt"
	"strings"

	"nexus/internal/catalog"
	"nexus/internal/client"
	"nexus/internal/session"
	"nexus/internal/tui/common"
	"nexus/internal/tui/components"
	"nexus/internal/tui/styles"

	"github.com/dustin/go-humanize"
)

func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder
	s := m.State()

	sb.WriteString(renderBanner())
	sb.WriteString(renderHeader(s) + "\n")
	sb.WriteString(renderSections(s) + "\n")
	if search := m.SearchView(); m.Mode() == common.Search || s.Query != "" {
		sb.WriteString(search + "\n")
	}
	sb.WriteString("\n")

	if s.Active == session.ViewNone {
		fileList := components.NewFileList()
		fileList.SetFiles(s.Visible())
		fileList.SetCursor(m.Cursor())
		fileList.SetMode(s.ViewMode)
		fileList.SetWidth(m.Width())
		sb.WriteString(fileList.View())
	} else {
		sb.WriteString(styles.Theme.Modal.Render(renderActiveView(m)))
		sb.WriteString("\n")
	}

	if status := m.StatusView(); status != "" {
		sb.WriteString("\n" + status)
	}
	if m.ShowHelp() {
		sb.WriteString("\n" + m.HelpView())
	} else {
		sb.WriteString("\n" + RenderKeyCommands(s.Active))
	}

	return styles.Theme.App.Render(sb.String())
}

func RenderKeyCommands(v session.ActiveView) string {
	var keys string
	switch v {
	case session.ViewNone:
		keys = "[↑/↓] Move  [Enter] View  [e] Edit  [x] Execute  [d] Delete  [n] New  [/] Search  [?] Help  [q] Quit"
	case session.ViewCreate:
		keys = "[Tab] Next field  [Ctrl+S] Create  [Ctrl+L] Location  [Esc] Cancel"
	case session.ViewEdit:
		keys = "[Ctrl+S] Save  [Esc] Cancel"
	case session.ViewContent:
		keys = "[↑/↓] Scroll  [Esc] Close"
	case session.ViewExecute:
		keys = "[c] Compile  [r] Run  [b] Compile & Run  [Esc] Close"
	case session.ViewLocation:
		keys = "[↑/↓] Move  [Enter] Open  [Backspace] Parent  [s] Select  [Esc] Cancel"
	case session.ViewOverwrite, session.ViewDelete:
		keys = "[y] Confirm  [n] Cancel"
	}
	return styles.Theme.Help.Render(keys)
}

func renderBanner() string {
	return styles.Theme.Title.Render("◆ NEXUS  File Manager")
}

func renderHeader(s *session.State) string {
	stats := s.Stats()
	return styles.Theme.Header.Render(fmt.Sprintf("📍 %s   📄 %s files   ⚡ %s code   🕑 %d recent   ▦ %s",
		s.CurrentLocation,
		humanize.Comma(int64(stats.Total)),
		humanize.Comma(int64(stats.Code)),
		stats.Recent,
		s.ViewMode))
}

func renderSections(s *session.State) string {
	tabs := []struct {
		key     string
		section catalog.Section
		label   string
	}{
		{"1", catalog.SectionAll, "All Files"},
		{"2", catalog.SectionCode, "Code Files"},
		{"3", catalog.SectionRecent, "Recent"},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("[%s] %s", t.key, t.label)
		if s.Section == t.section {
			parts = append(parts, styles.Theme.Selected.Render(label))
		} else {
			parts = append(parts, styles.Theme.Muted.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func renderActiveView(m common.ModelReader) string {
	s := m.State()
	switch s.Active {
	case session.ViewCreate:
		return m.FormView()
	case session.ViewOverwrite:
		return styles.Theme.Warning.Render("⚠️  File Already Exists") + "\n\n" +
			fmt.Sprintf("%q already exists in %s. Overwrite it?", strings.TrimSpace(s.Form.Name), s.Form.Location)
	case session.ViewEdit:
		return styles.Theme.Title.Render("✏️  Edit: "+s.CurrentEditFile) + "\n" + m.EditorView()
	case session.ViewContent:
		return styles.Theme.Title.Render("👁  "+s.ViewName) + " " +
			styles.Theme.Muted.Render(humanize.Bytes(uint64(len(s.ViewContent)))) + "\n" + m.ContentView()
	case session.ViewExecute:
		return renderExecute(m)
	case session.ViewLocation:
		browser := components.NewFileBrowser()
		browser.SetListing(s.Listing)
		browser.SetCursor(m.LocationCursor())
		return styles.Theme.Title.Render("📂 Select Location") + "\n" + browser.View()
	case session.ViewDelete:
		return styles.Theme.Error.Render("🗑  Delete File") + "\n\n" +
			fmt.Sprintf("Are you sure you want to delete %q?", s.PendingDelete)
	}
	return ""
}

func renderExecute(m common.ModelReader) string {
	exec := m.Execution()
	var sb strings.Builder
	sb.WriteString(styles.Theme.Title.Render("▶  Execute: "+exec.File()) + "\n")

	labels := map[client.Action]string{
		client.ActionCompile: "[c] Compile",
		client.ActionRun:     "[r] Run",
		client.ActionBoth:    "[b] Compile & Run",
	}
	buttons := make([]string, 0, len(client.Actions))
	for _, a := range client.Actions {
		if exec.ControlsEnabled() {
			buttons = append(buttons, styles.Theme.Selected.Render(labels[a]))
		} else {
			buttons = append(buttons, styles.Theme.Muted.Render(labels[a]))
		}
	}
	sb.WriteString(strings.Join(buttons, "  ") + "\n\n")
	sb.WriteString(m.ContentView())
	return sb.String()
}
