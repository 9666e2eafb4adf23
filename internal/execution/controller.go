// Package execution drives compile/run requests against one target file.
//
// A Controller moves Idle -> Dispatched on Begin and back to Idle on
// Resolve, whatever the outcome. While Dispatched the action controls are
// disabled and further Begin calls are rejected.
package execution

import (
	"nexus/internal/client"
	"nexus/internal/errors"
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Dispatched
)

func (p Phase) String() string {
	if p == Dispatched {
		return "dispatched"
	}
	return "idle"
}

// Controller is the execution state for the open execute view. It is not
// safe for concurrent use.
type Controller struct {
	file    string
	action  client.Action
	phase   Phase
	outcome *Outcome
}

// NewController returns an idle controller with no target.
func NewController() *Controller {
	return &Controller{}
}

// Open targets file and clears any previous output.
func (c *Controller) Open(file string) {
	c.file = file
	c.action = ""
	c.phase = Idle
	c.outcome = nil
}

// Close drops the target. A request still in flight resolves into a closed
// controller and is discarded.
func (c *Controller) Close() {
	c.file = ""
	c.phase = Idle
	c.outcome = nil
}

// File returns the target file, empty when closed.
func (c *Controller) File() string {
	return c.file
}

// Phase returns the lifecycle state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// ControlsEnabled reports whether compile, run and both may be triggered.
func (c *Controller) ControlsEnabled() bool {
	return c.file != "" && c.phase == Idle
}

// Begin dispatches action against the target file in location. It fails
// with errors.ErrBusy while a previous request is outstanding.
func (c *Controller) Begin(action client.Action, location string) (client.ExecuteRequest, error) {
	if c.phase == Dispatched {
		return client.ExecuteRequest{}, errors.ErrBusy
	}
	if c.file == "" {
		return client.ExecuteRequest{}, errors.NewValidationError("no file selected for execution", "file")
	}
	if _, err := client.ParseAction(string(action)); err != nil {
		return client.ExecuteRequest{}, errors.NewValidationError(err.Error(), "action")
	}
	c.phase = Dispatched
	c.action = action
	c.outcome = nil
	return client.ExecuteRequest{Filename: c.file, Action: action, Location: location}, nil
}

// Resolve classifies the reply to the outstanding request and returns the
// controller to Idle. err is the transport error, if the request did not
// complete.
func (c *Controller) Resolve(res client.ExecutionResult, err error) Outcome {
	o := Classify(c.action, res, err)
	c.phase = Idle
	if c.file != "" {
		c.outcome = &o
	}
	return o
}

// Outcome returns the last resolved outcome.
func (c *Controller) Outcome() (Outcome, bool) {
	if c.outcome == nil {
		return Outcome{}, false
	}
	return *c.outcome, true
}

// Output is the text for the output panel.
func (c *Controller) Output() string {
	switch {
	case c.phase == Dispatched:
		return Executing
	case c.outcome != nil:
		return c.outcome.Render()
	default:
		return ""
	}
}
