package app

import (
	"nexus/internal/catalog"
	"nexus/internal/client"
	"nexus/internal/session"
)

// Command is a user intent. The set is closed: only this package defines
// commands, and Controller.Dispatch handles every one of them.
type Command interface {
	command()
}

// Reload fetches the catalog again.
type Reload struct{}

// OpenCreate opens the create form, prefilled with the current location.
type OpenCreate struct{}

// UpdateCreateForm replaces the create form's fields.
type UpdateCreateForm struct {
	Form session.CreateForm
}

// CreateFile submits the create form, negotiating overwrite if the file
// already exists.
type CreateFile struct{}

// ConfirmOverwrite commits the create form over an existing file.
type ConfirmOverwrite struct{}

// CancelOverwrite abandons the overwrite and returns to the create form.
type CancelOverwrite struct{}

// OpenEdit loads Name into the editor.
type OpenEdit struct {
	Name string
}

// SaveEdit writes Content to the file being edited.
type SaveEdit struct {
	Content string
}

// OpenView loads Name read-only.
type OpenView struct {
	Name string
}

// DeleteFile asks for confirmation before deleting Name.
type DeleteFile struct {
	Name string
}

// ConfirmDelete deletes the file awaiting confirmation.
type ConfirmDelete struct{}

// OpenExecute opens the execute view for Name.
type OpenExecute struct {
	Name string
}

// Execute runs Action against the execute view's file.
type Execute struct {
	Action client.Action
}

// OpenLocation opens the directory browser at the current location.
type OpenLocation struct{}

// Navigate descends into Dir.
type Navigate struct {
	Dir string
}

// NavigateParent ascends one level.
type NavigateParent struct{}

// SelectLocation uses the current location for the create form.
type SelectLocation struct{}

// Search sets the search query.
type Search struct {
	Query string
}

// SetSection selects a catalog section.
type SetSection struct {
	Section catalog.Section
}

// SetViewMode switches between grid and list layout.
type SetViewMode struct {
	Mode catalog.ViewMode
}

// Close closes the active view.
type Close struct{}

// Cancel aborts every outstanding request.
type Cancel struct{}

func (Reload) command()           {}
func (OpenCreate) command()       {}
func (UpdateCreateForm) command() {}
func (CreateFile) command()       {}
func (ConfirmOverwrite) command() {}
func (CancelOverwrite) command()  {}
func (OpenEdit) command()         {}
func (SaveEdit) command()         {}
func (OpenView) command()         {}
func (DeleteFile) command()       {}
func (ConfirmDelete) command()    {}
func (OpenExecute) command()      {}
func (Execute) command()          {}
func (OpenLocation) command()     {}
func (Navigate) command()         {}
func (NavigateParent) command()   {}
func (SelectLocation) command()   {}
func (Search) command()           {}
func (SetSection) command()       {}
func (SetViewMode) command()      {}
func (Close) command()            {}
func (Cancel) command()           {}
