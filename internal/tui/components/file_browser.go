package components

import (
	"fmt"
	"strings"

	"nexus/internal/client"
	"nexus/internal/navigator"
	"nexus/internal/tui/styles"
)

// ParentEntry is the first row of every directory listing.
const ParentEntry = "../ (Parent Directory)"

// FileBrowser renders a directory listing with a parent row on top. Row 0
// is the parent; row i>0 is Subdirectories[i-1].
type FileBrowser struct {
	listing client.DirectoryListing
	cursor  int
}

func NewFileBrowser() *FileBrowser {
	return &FileBrowser{}
}

func (fb *FileBrowser) SetListing(listing client.DirectoryListing) {
	fb.listing = listing
}

func (fb *FileBrowser) SetCursor(cursor int) {
	fb.cursor = cursor
}

// Rows is the number of selectable rows.
func (fb *FileBrowser) Rows() int {
	return len(fb.listing.Subdirectories) + 1
}

func (fb *FileBrowser) View() string {
	var s strings.Builder

	crumbs := navigator.Segments(fb.listing.CurrentPath)
	s.WriteString(styles.Theme.Header.Render("📍 " + strings.Join(append([]string{"."}, crumbs...), " / ")))
	s.WriteString("\n\n")

	rows := append([]string{ParentEntry}, fb.listing.Subdirectories...)
	for i, name := range rows {
		cursor := " "
		style := styles.Theme.Unselected
		if i == fb.cursor {
			cursor = ">"
			style = styles.Theme.Selected
		}
		s.WriteString(fmt.Sprintf("%s 📁 %s\n", cursor, style.Render(name)))
	}
	return s.String()
}
