package components

import (
	"strings"

	"nexus/internal/session"
	"nexus/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldName = iota
	fieldLocation
	fieldContent
	fieldCount
)

// CreateForm edits the create view's name, location and content.
type CreateForm struct {
	name     textinput.Model
	location textinput.Model
	content  textarea.Model
	focus    int
}

func NewCreateForm() *CreateForm {
	name := textinput.New()
	name.Placeholder = "filename.ext"
	name.Width = 40
	name.Prompt = "Name:     "

	location := textinput.New()
	location.Placeholder = "."
	location.Width = 40
	location.Prompt = "Location: "

	content := textarea.New()
	content.Placeholder = "File content"
	content.SetWidth(60)
	content.SetHeight(10)
	content.ShowLineNumbers = false

	cf := &CreateForm{name: name, location: location, content: content}
	cf.setFocus(fieldName)
	return cf
}

// Values returns the form as session fields.
func (cf *CreateForm) Values() session.CreateForm {
	return session.CreateForm{
		Name:     cf.name.Value(),
		Location: cf.location.Value(),
		Content:  cf.content.Value(),
	}
}

// Load copies f into the inputs, leaving unchanged fields alone so the
// cursor position survives.
func (cf *CreateForm) Load(f session.CreateForm) {
	if cf.name.Value() != f.Name {
		cf.name.SetValue(f.Name)
	}
	if cf.location.Value() != f.Location {
		cf.location.SetValue(f.Location)
	}
	if cf.content.Value() != f.Content {
		cf.content.SetValue(f.Content)
	}
}

// Reset focuses the first field.
func (cf *CreateForm) Reset() {
	cf.setFocus(fieldName)
}

func (cf *CreateForm) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			cf.setFocus((cf.focus + 1) % fieldCount)
			return nil
		case "shift+tab":
			cf.setFocus((cf.focus + fieldCount - 1) % fieldCount)
			return nil
		}
	}

	var cmd tea.Cmd
	switch cf.focus {
	case fieldName:
		cf.name, cmd = cf.name.Update(msg)
	case fieldLocation:
		cf.location, cmd = cf.location.Update(msg)
	default:
		cf.content, cmd = cf.content.Update(msg)
	}
	return cmd
}

func (cf *CreateForm) setFocus(field int) {
	cf.focus = field
	cf.name.Blur()
	cf.location.Blur()
	cf.content.Blur()
	switch field {
	case fieldName:
		cf.name.Focus()
	case fieldLocation:
		cf.location.Focus()
	default:
		cf.content.Focus()
	}
}

func (cf *CreateForm) View() string {
	var s strings.Builder
	s.WriteString(styles.Theme.Title.Render("📝 Create New File") + "\n")
	s.WriteString(cf.name.View() + "\n")
	s.WriteString(cf.location.View() + "\n\n")
	s.WriteString(cf.content.View() + "\n\n")
	s.WriteString(styles.Theme.Help.Render("[Tab] Next field  [Ctrl+S] Create  [Ctrl+L] Browse location  [Esc] Cancel"))
	return s.String()
}
