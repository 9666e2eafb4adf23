// Package app owns the session state and turns commands into state changes
// and File Service requests.
//
// The Controller is driven from a single goroutine. Dispatch and Apply
// mutate state synchronously and may return a Task; the caller runs the
// Task anywhere and hands its Event back to Apply on the same goroutine
// that calls Dispatch.
package app

import (
	"context"
	"strings"

	"nexus/internal/client"
	"nexus/internal/errors"
	"nexus/internal/execution"
	"nexus/internal/log"
	"nexus/internal/navigator"
	"nexus/internal/session"
)

// User-visible notices.
const (
	MsgServerError      = "Error communicating with server"
	MsgTimedOut         = "Request timed out"
	MsgCanceled         = "Request canceled"
	MsgEnterFilename    = "Please enter a filename"
	MsgCreated          = "File created successfully!"
	MsgCreateFailed     = "Failed to create file"
	MsgExistsFailed     = "Could not check whether the file exists"
	MsgSaved            = "File saved successfully!"
	MsgSaveFailed       = "Failed to save file"
	MsgLoadFailed       = "Failed to load file"
	MsgDeleted          = "File deleted successfully!"
	MsgDeleteFailed     = "Failed to delete file"
	MsgBrowseFailed     = "Failed to browse directories"
	MsgLocationUpdated  = "Location updated!"
	MsgExecutionRunning = "Execution already in progress"
)

// Canceler aborts outstanding requests. *client.Tracker implements it.
type Canceler interface {
	CancelAll() int
}

// Controller is the single owner of the session state.
type Controller struct {
	svc      client.FileService
	canceler Canceler
	state    *session.State
	exec     *execution.Controller

	// execSeq identifies the current execute view so replies for a view
	// that has since been closed are dropped.
	execSeq int
	// locationReturn is the view the directory browser returns to.
	locationReturn session.ActiveView
	pending        int
}

// Option configures a Controller.
type Option func(*Controller)

// WithCanceler wires the Cancel command to c.
func WithCanceler(c Canceler) Option {
	return func(ctrl *Controller) { ctrl.canceler = c }
}

// WithState starts the controller from s instead of session.New().
func WithState(s *session.State) Option {
	return func(ctrl *Controller) { ctrl.state = s }
}

// New creates a controller over svc.
func New(svc client.FileService, opts ...Option) *Controller {
	c := &Controller{
		svc:   svc,
		state: session.New(),
		exec:  execution.NewController(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the session state for rendering. Callers must not modify it.
func (c *Controller) State() *session.State {
	return c.state
}

// Execution returns the execute view's controller for rendering.
func (c *Controller) Execution() *execution.Controller {
	return c.exec
}

// Pending returns the number of tasks handed out and not yet applied.
func (c *Controller) Pending() int {
	return c.pending
}

// Run dispatches cmd and drives its whole task chain on the calling
// goroutine.
func (c *Controller) Run(ctx context.Context, cmd Command) {
	for task := c.Dispatch(cmd); task != nil; {
		task = c.Apply(task(ctx))
	}
}

// Dispatch applies cmd and returns the request it needs, if any.
func (c *Controller) Dispatch(cmd Command) Task {
	s := c.state
	switch cmd := cmd.(type) {
	case Reload:
		return c.spawn(loadTask(c.svc))

	case OpenCreate:
		s.Form.Location = s.CurrentLocation
		c.open(session.ViewCreate)

	case UpdateCreateForm:
		s.Form = cmd.Form

	case CreateFile:
		req, ok := c.formRequest()
		if !ok {
			return nil
		}
		return c.spawn(existsTask(c.svc, req))

	case ConfirmOverwrite:
		if s.Active != session.ViewOverwrite {
			return nil
		}
		c.open(session.ViewCreate)
		// The form may have been edited since the existence check.
		req, ok := c.formRequest()
		if !ok {
			return nil
		}
		return c.spawn(createTask(c.svc, req))

	case CancelOverwrite:
		if s.Active == session.ViewOverwrite {
			c.open(session.ViewCreate)
		}

	case OpenEdit:
		return c.spawn(viewTask(c.svc, cmd.Name, true))

	case SaveEdit:
		if s.Active != session.ViewEdit || s.CurrentEditFile == "" {
			return nil
		}
		s.EditContent = cmd.Content
		return c.spawn(editTask(c.svc, client.WriteRequest{
			Filename: s.CurrentEditFile,
			Content:  cmd.Content,
			Location: s.CurrentLocation,
		}))

	case OpenView:
		return c.spawn(viewTask(c.svc, cmd.Name, false))

	case DeleteFile:
		c.open(session.ViewDelete)
		s.PendingDelete = cmd.Name

	case ConfirmDelete:
		if s.Active != session.ViewDelete || s.PendingDelete == "" {
			return nil
		}
		req := client.DeleteRequest{Filename: s.PendingDelete, Location: s.CurrentLocation}
		c.close()
		return c.spawn(deleteTask(c.svc, req))

	case OpenExecute:
		c.open(session.ViewExecute)
		c.execSeq++
		c.exec.Open(cmd.Name)
		s.CurrentExecuteFile = cmd.Name

	case Execute:
		if s.Active != session.ViewExecute {
			return nil
		}
		req, err := c.exec.Begin(cmd.Action, s.CurrentLocation)
		if errors.Is(err, errors.ErrBusy) {
			s.Notify(session.LevelWarning, MsgExecutionRunning)
			return nil
		}
		if err != nil {
			s.Notify(session.LevelWarning, err.Error())
			return nil
		}
		log.LogWithFields(log.F("file", req.Filename), log.F("action", string(req.Action))).Info("Executing file")
		return c.spawn(executeTask(c.svc, c.execSeq, req))

	case OpenLocation:
		if s.Active != session.ViewLocation {
			c.locationReturn = session.ViewNone
			if s.Active == session.ViewCreate {
				c.locationReturn = session.ViewCreate
			}
		}
		return c.spawn(browseTask(c.svc, s.CurrentLocation))

	case Navigate:
		s.SetLocation(navigator.Descend(s.CurrentLocation, cmd.Dir))
		return c.spawn(browseTask(c.svc, s.CurrentLocation))

	case NavigateParent:
		s.SetLocation(navigator.Ascend(s.CurrentLocation))
		return c.spawn(browseTask(c.svc, s.CurrentLocation))

	case SelectLocation:
		if s.Active != session.ViewLocation {
			return nil
		}
		s.Form.Location = s.CurrentLocation
		s.Notify(session.LevelSuccess, MsgLocationUpdated)
		c.open(c.locationReturn)

	case Search:
		s.Query = cmd.Query

	case SetSection:
		s.Section = cmd.Section

	case SetViewMode:
		s.ViewMode = cmd.Mode

	case Close:
		c.close()

	case Cancel:
		if c.canceler != nil {
			if n := c.canceler.CancelAll(); n > 0 {
				log.Infof("Canceled %d outstanding request(s)", n)
			}
		}
	}
	return nil
}

// Apply folds the result of a Task into the state and returns the follow-up
// request, if any.
func (c *Controller) Apply(ev Event) Task {
	if c.pending > 0 {
		c.pending--
	}
	s := c.state

	switch ev := ev.(type) {
	case catalogLoaded:
		if ev.err != nil {
			// The previous catalog stays; only the request layer notice is shown.
			log.LogWithError(ev.err).Warn("Catalog reload failed, keeping previous listing")
			c.notifyTransport(ev.err)
			return nil
		}
		s.Files = ev.files
		log.Debugf("Loaded %d file(s)", len(ev.files))

	case existsChecked:
		if ev.err != nil {
			c.fail(ev.err, MsgExistsFailed)
			return nil
		}
		if ev.exists {
			c.open(session.ViewOverwrite)
			return nil
		}
		return c.spawn(createTask(c.svc, ev.req))

	case created:
		if ev.err != nil {
			c.fail(ev.err, MsgCreateFailed)
			return nil
		}
		log.LogWithFields(log.F("file", ev.req.Filename), log.F("location", ev.req.Location)).Info("File created")
		s.Notify(session.LevelSuccess, MsgCreated)
		if s.Active == session.ViewCreate || s.Active == session.ViewOverwrite {
			s.Close()
		}
		s.ResetForm()
		return c.spawn(loadTask(c.svc))

	case contentLoaded:
		if ev.err != nil {
			c.fail(ev.err, MsgLoadFailed)
			return nil
		}
		if ev.forEdit {
			c.open(session.ViewEdit)
			s.CurrentEditFile = ev.name
			s.EditContent = ev.content
		} else {
			c.open(session.ViewContent)
			s.ViewName = ev.name
			s.ViewContent = ev.content
		}

	case edited:
		if ev.err != nil {
			c.fail(ev.err, MsgSaveFailed)
			return nil
		}
		log.LogWithFields(log.F("file", ev.req.Filename)).Info("File saved")
		s.Notify(session.LevelSuccess, MsgSaved)
		if s.Active == session.ViewEdit && s.CurrentEditFile == ev.req.Filename {
			c.close()
		}
		return c.spawn(loadTask(c.svc))

	case deleted:
		if ev.err != nil {
			c.fail(ev.err, MsgDeleteFailed)
			return nil
		}
		log.LogWithFields(log.F("file", ev.req.Filename)).Info("File deleted")
		s.Notify(session.LevelSuccess, MsgDeleted)
		return c.spawn(loadTask(c.svc))

	case executed:
		if ev.seq != c.execSeq || s.Active != session.ViewExecute {
			log.Debug("Dropping execution reply for a closed view")
			return nil
		}
		o := c.exec.Resolve(ev.res, ev.err)
		if ev.err != nil {
			c.notifyTransport(ev.err)
		}
		code, _ := o.ExitCode()
		log.LogWithFields(log.F("file", c.exec.File()), log.F("outcome", o.Kind.String()), log.F("exit_code", code)).Info("Execution finished")

	case browsed:
		if ev.err != nil {
			c.fail(ev.err, MsgBrowseFailed)
			return nil
		}
		s.Listing = ev.listing
		if s.Active != session.ViewLocation {
			c.open(session.ViewLocation)
		}
	}
	return nil
}

func (c *Controller) spawn(t Task) Task {
	c.pending++
	return t
}

// formRequest validates the create form as it is now.
func (c *Controller) formRequest() (client.WriteRequest, bool) {
	f := c.state.Form
	name := strings.TrimSpace(f.Name)
	if name == "" {
		log.LogWithError(errors.ErrEmptyFilename).Debug("Create rejected")
		c.state.Notify(session.LevelWarning, MsgEnterFilename)
		return client.WriteRequest{}, false
	}
	loc := f.Location
	if loc == "" {
		loc = session.RootLocation
	}
	return client.WriteRequest{Filename: name, Content: f.Content, Location: loc}, true
}

// open switches the active view, releasing the execute view's controller
// when it is left.
func (c *Controller) open(v session.ActiveView) {
	if v == session.ViewNone {
		c.close()
		return
	}
	if c.state.Active == session.ViewExecute && v != session.ViewExecute {
		c.exec.Close()
		c.execSeq++
	}
	c.state.Open(v)
}

func (c *Controller) close() {
	s := c.state
	switch s.Active {
	case session.ViewOverwrite:
		c.open(session.ViewCreate)
		return
	case session.ViewLocation:
		if c.locationReturn != session.ViewNone {
			ret := c.locationReturn
			c.locationReturn = session.ViewNone
			c.open(ret)
			return
		}
	case session.ViewExecute:
		c.exec.Close()
		c.execSeq++
	}
	s.Close()
}

func (c *Controller) fail(err error, msg string) {
	c.notifyTransport(err)
	c.state.Notify(session.LevelError, msg)
}

func (c *Controller) notifyTransport(err error) {
	switch {
	case errors.IsTimedOut(err):
		c.state.Notify(session.LevelError, MsgTimedOut)
	case errors.IsCanceled(err):
		c.state.Notify(session.LevelWarning, MsgCanceled)
	case errors.IsTransport(err):
		c.state.Notify(session.LevelError, MsgServerError)
	}
}
