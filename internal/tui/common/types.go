package common

import (
	"nexus/internal/execution"
	"nexus/internal/session"
)

type Mode int

const (
	Normal Mode = iota
	Search
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	State() *session.State
	Execution() *execution.Controller
	Cursor() int
	LocationCursor() int
	ShowHelp() bool
	Mode() Mode
	Loading() bool
	Width() int

	// Widget views owned by the model.
	SearchView() string
	FormView() string
	EditorView() string
	ContentView() string
	StatusView() string
	HelpView() string
}
