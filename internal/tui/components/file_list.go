package components

import (
	"fmt"
	"strings"

	"nexus/internal/catalog"
	"nexus/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

const maxCardName = 18

// FileList renders the visible catalog as a grid of cards or a list.
type FileList struct {
	files  []catalog.FileEntry
	cursor int
	mode   catalog.ViewMode
	width  int
}

func NewFileList() *FileList {
	return &FileList{width: 80}
}

func (fl *FileList) SetFiles(files []catalog.FileEntry) {
	fl.files = files
}

func (fl *FileList) SetCursor(cursor int) {
	fl.cursor = cursor
}

func (fl *FileList) SetMode(mode catalog.ViewMode) {
	fl.mode = mode
}

func (fl *FileList) SetWidth(width int) {
	if width > 0 {
		fl.width = width
	}
}

// Columns is how many cards fit on one grid row.
func (fl *FileList) Columns() int {
	if fl.mode == catalog.ViewList {
		return 1
	}
	card := lipgloss.Width(styles.Theme.Card.Render(""))
	return max(1, fl.width/card)
}

func (fl *FileList) View() string {
	if len(fl.files) == 0 {
		return styles.Theme.Muted.Render("No files found") + "\n"
	}
	if fl.mode == catalog.ViewList {
		return fl.listView()
	}
	return fl.gridView()
}

func (fl *FileList) listView() string {
	var s strings.Builder
	for i, f := range fl.files {
		cursor := " "
		style := styles.Theme.Unselected
		if i == fl.cursor {
			cursor = ">"
			style = styles.Theme.Selected
		}
		kind := f.Extension
		if f.IsCode {
			kind = styles.Theme.Code.Render(kind + " ⚡")
		}
		s.WriteString(fmt.Sprintf("%s %s %s  %s\n", cursor, f.Icon, style.Render(f.Name), styles.Theme.Muted.Render(kind)))
	}
	return s.String()
}

func (fl *FileList) gridView() string {
	cols := fl.Columns()
	var rows []string
	for start := 0; start < len(fl.files); start += cols {
		end := min(start+cols, len(fl.files))
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, fl.card(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (fl *FileList) card(i int) string {
	f := fl.files[i]
	style := styles.Theme.Card
	if i == fl.cursor {
		style = styles.Theme.CardActive
	}
	name := f.Name
	if r := []rune(name); len(r) > maxCardName {
		name = string(r[:maxCardName-1]) + "…"
	}
	meta := strings.ToUpper(f.Extension)
	if f.IsCode {
		meta += " ⚡"
	}
	return style.Render(f.Icon + " " + name + "\n" + styles.Theme.Muted.Render(meta))
}
