package client

import (
	"context"
	"fmt"
	"strings"
)

// FileService is the remote API the orchestration layer talks to. Client
// implements it over HTTP; tests substitute scripted fakes.
type FileService interface {
	ListFiles(ctx context.Context) ([]string, error)
	View(ctx context.Context, filename string) (string, error)
	Create(ctx context.Context, req WriteRequest) error
	Edit(ctx context.Context, req WriteRequest) error
	Delete(ctx context.Context, req DeleteRequest) error
	Exists(ctx context.Context, filename, location string) (bool, error)
	Execute(ctx context.Context, req ExecuteRequest) (ExecutionResult, error)
	Browse(ctx context.Context, path string) (DirectoryListing, error)
}

// Action is what the service should do with a code file.
type Action string

const (
	ActionCompile Action = "compile"
	ActionRun     Action = "run"
	ActionBoth    Action = "both"
)

// Actions lists every valid action in display order.
var Actions = []Action{ActionCompile, ActionRun, ActionBoth}

// ParseAction converts user input into an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionCompile, ActionRun, ActionBoth:
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q (want compile, run or both)", s)
}

// WriteRequest is the body of /api/create and /api/edit.
type WriteRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Location string `json:"location"`
}

// DeleteRequest is the body of /api/delete.
type DeleteRequest struct {
	Filename string `json:"filename"`
	Location string `json:"location"`
}

// ExecuteRequest is the body of /api/execute.
type ExecuteRequest struct {
	Filename string `json:"filename"`
	Action   Action `json:"action"`
	Location string `json:"location"`
}

// ExecutionResult is the reply of /api/execute. ExitCode is nil when the
// service omitted it, which is distinct from a reported 0.
type ExecutionResult struct {
	Success  bool   `json:"success"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
	ExitCode *int   `json:"exitCode,omitempty"`
}

// DirectoryListing is the reply of /api/browse.
type DirectoryListing struct {
	CurrentPath    string   `json:"currentPath"`
	Subdirectories []string `json:"directories"`
}

type filesResponse struct {
	Files []string `json:"files"`
}

type viewResponse struct {
	Content string `json:"content"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
