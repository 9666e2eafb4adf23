// Package session holds the client's in-memory state. Nothing here is
// persisted; a new process always starts from New().
package session

import (
	"nexus/internal/catalog"
	"nexus/internal/client"
)

// RootLocation is the service's root directory.
const RootLocation = "."

// ActiveView is the one modal surface currently shown, if any.
type ActiveView int

const (
	ViewNone ActiveView = iota
	ViewCreate
	ViewEdit
	ViewContent
	ViewExecute
	ViewLocation
	ViewOverwrite
	ViewDelete
)

func (v ActiveView) String() string {
	switch v {
	case ViewCreate:
		return "create"
	case ViewEdit:
		return "edit"
	case ViewContent:
		return "view"
	case ViewExecute:
		return "execute"
	case ViewLocation:
		return "location"
	case ViewOverwrite:
		return "overwrite"
	case ViewDelete:
		return "delete"
	default:
		return "none"
	}
}

// CreateForm holds the create view's fields.
type CreateForm struct {
	Name     string
	Content  string
	Location string
}

// State is the single mutable session record.
type State struct {
	Files           []catalog.FileEntry
	CurrentLocation string
	ViewMode        catalog.ViewMode
	Section         catalog.Section
	Query           string

	// Active is the open view. Change it only through Open and Close.
	Active ActiveView

	// CurrentEditFile is set while the edit view is open.
	CurrentEditFile string
	// CurrentExecuteFile is set only while the execute view is open.
	CurrentExecuteFile string
	// PendingDelete is the file awaiting delete confirmation.
	PendingDelete string

	Form        CreateForm
	EditContent string
	ViewName    string
	ViewContent string
	Listing     client.DirectoryListing

	Notices []Notice
}

// New returns the startup state.
func New() *State {
	return &State{
		CurrentLocation: RootLocation,
		ViewMode:        catalog.ViewGrid,
		Section:         catalog.SectionAll,
		Form:            CreateForm{Location: RootLocation},
	}
}

// Open makes v the active view. Any other open view is closed first, with
// its per-view targets cleared.
func (s *State) Open(v ActiveView) {
	if s.Active != v {
		s.leave(s.Active, v)
	}
	s.Active = v
}

// Close closes the active view.
func (s *State) Close() {
	s.leave(s.Active, ViewNone)
	s.Active = ViewNone
}

// leave clears the targets owned by from. The overwrite prompt sits on top
// of the create form, so moving between those two keeps the form.
func (s *State) leave(from, to ActiveView) {
	switch from {
	case ViewEdit:
		s.CurrentEditFile = ""
		s.EditContent = ""
	case ViewExecute:
		s.CurrentExecuteFile = ""
	case ViewContent:
		s.ViewName = ""
		s.ViewContent = ""
	case ViewDelete:
		s.PendingDelete = ""
	}
	if to != ViewExecute {
		s.CurrentExecuteFile = ""
	}
}

// ResetForm clears the create form, keeping the location default.
func (s *State) ResetForm() {
	s.Form = CreateForm{Location: RootLocation}
}

// SetLocation changes the browse location. An empty path means the root.
func (s *State) SetLocation(p string) {
	if p == "" {
		p = RootLocation
	}
	s.CurrentLocation = p
}

// Visible is the catalog after the section and search filters.
func (s *State) Visible() []catalog.FileEntry {
	return catalog.Visible(s.Files, s.Section, s.Query)
}

// Stats are the header counters for the full catalog.
func (s *State) Stats() catalog.Stats {
	return catalog.ComputeStats(s.Files)
}
