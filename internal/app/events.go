package app

import (
	"context"

	"nexus/internal/catalog"
	"nexus/internal/client"
	"nexus/internal/navigator"
)

// Task performs one File Service request off the controller's goroutine
// and reports the result as an Event. Tasks never touch session state.
type Task func(ctx context.Context) Event

// Event is the result of a Task, applied back with Controller.Apply.
type Event interface {
	event()
}

type catalogLoaded struct {
	files []catalog.FileEntry
	err   error
}

type existsChecked struct {
	req    client.WriteRequest
	exists bool
	err    error
}

type created struct {
	req client.WriteRequest
	err error
}

type contentLoaded struct {
	name    string
	content string
	forEdit bool
	err     error
}

type edited struct {
	req client.WriteRequest
	err error
}

type deleted struct {
	req client.DeleteRequest
	err error
}

type executed struct {
	seq int
	res client.ExecutionResult
	err error
}

type browsed struct {
	path    string
	listing client.DirectoryListing
	err     error
}

func (catalogLoaded) event() {}
func (existsChecked) event() {}
func (created) event()       {}
func (contentLoaded) event() {}
func (edited) event()        {}
func (deleted) event()       {}
func (executed) event()      {}
func (browsed) event()       {}

func loadTask(svc client.FileService) Task {
	return func(ctx context.Context) Event {
		files, err := catalog.Load(ctx, svc)
		return catalogLoaded{files: files, err: err}
	}
}

func existsTask(svc client.FileService, req client.WriteRequest) Task {
	return func(ctx context.Context) Event {
		ok, err := svc.Exists(ctx, req.Filename, req.Location)
		return existsChecked{req: req, exists: ok, err: err}
	}
}

func createTask(svc client.FileService, req client.WriteRequest) Task {
	return func(ctx context.Context) Event {
		return created{req: req, err: svc.Create(ctx, req)}
	}
}

func viewTask(svc client.FileService, name string, forEdit bool) Task {
	return func(ctx context.Context) Event {
		content, err := svc.View(ctx, name)
		return contentLoaded{name: name, content: content, forEdit: forEdit, err: err}
	}
}

func editTask(svc client.FileService, req client.WriteRequest) Task {
	return func(ctx context.Context) Event {
		return edited{req: req, err: svc.Edit(ctx, req)}
	}
}

func deleteTask(svc client.FileService, req client.DeleteRequest) Task {
	return func(ctx context.Context) Event {
		return deleted{req: req, err: svc.Delete(ctx, req)}
	}
}

func executeTask(svc client.FileService, seq int, req client.ExecuteRequest) Task {
	return func(ctx context.Context) Event {
		res, err := svc.Execute(ctx, req)
		return executed{seq: seq, res: res, err: err}
	}
}

func browseTask(svc client.FileService, p string) Task {
	return func(ctx context.Context) Event {
		listing, err := navigator.Browse(ctx, svc, p)
		return browsed{path: p, listing: listing, err: err}
	}
}
