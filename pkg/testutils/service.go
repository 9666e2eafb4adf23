package testutils

import (
	"context"
	"path"
	"sync"

	"nexus/internal/client"
)

// FakeService is an in-memory client.FileService. It records every request
// and can be scripted to fail or block per endpoint. Endpoint keys are the
// API path without the "/api/" prefix: files, view, create, edit, delete,
// exists, execute, browse.
type FakeService struct {
	mu sync.Mutex

	// Files is the listing returned by ListFiles, in order.
	Files []string
	// Contents maps file names to their content for View.
	Contents map[string]string
	// Dirs maps a browse path to its subdirectories.
	Dirs map[string][]string
	// Result is returned by Execute.
	Result client.ExecutionResult

	existing map[string]bool
	errs     map[string]error
	gates    map[string]chan struct{}
	calls    map[string]int

	Created  []client.WriteRequest
	Edited   []client.WriteRequest
	Deleted  []client.DeleteRequest
	Executed []client.ExecuteRequest
	Browsed  []string
}

var _ client.FileService = (*FakeService)(nil)

// NewFakeService returns an empty service.
func NewFakeService() *FakeService {
	return &FakeService{
		Contents: make(map[string]string),
		Dirs:     make(map[string][]string),
		existing: make(map[string]bool),
		errs:     make(map[string]error),
		gates:    make(map[string]chan struct{}),
		calls:    make(map[string]int),
	}
}

// SetExists marks filename as present under location for Exists.
func (f *FakeService) SetExists(filename, location string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existing[key(filename, location)] = true
}

// Fail makes every later call to endpoint return err. A nil err clears it.
func (f *FakeService) Fail(endpoint string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, endpoint)
		return
	}
	f.errs[endpoint] = err
}

// Block makes calls to endpoint wait until the returned func is called or
// the request context ends.
func (f *FakeService) Block(endpoint string) (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gates[endpoint] = gate
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// Calls returns how many times endpoint was requested.
func (f *FakeService) Calls(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

// TotalCalls returns the number of requests across every endpoint.
func (f *FakeService) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// Snapshot returns copies of the recorded write requests.
func (f *FakeService) Snapshot() (created, edited []client.WriteRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.WriteRequest(nil), f.Created...), append([]client.WriteRequest(nil), f.Edited...)
}

func (f *FakeService) enter(ctx context.Context, endpoint string) error {
	f.mu.Lock()
	f.calls[endpoint]++
	gate := f.gates[endpoint]
	err := f.errs[endpoint]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *FakeService) ListFiles(ctx context.Context) ([]string, error) {
	if err := f.enter(ctx, "files"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Files...), nil
}

func (f *FakeService) View(ctx context.Context, filename string) (string, error) {
	if err := f.enter(ctx, "view"); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Contents[filename], nil
}

func (f *FakeService) Create(ctx context.Context, req client.WriteRequest) error {
	if err := f.enter(ctx, "create"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, req)
	f.store(req)
	return nil
}

func (f *FakeService) Edit(ctx context.Context, req client.WriteRequest) error {
	if err := f.enter(ctx, "edit"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Edited = append(f.Edited, req)
	f.store(req)
	return nil
}

func (f *FakeService) Delete(ctx context.Context, req client.DeleteRequest) error {
	if err := f.enter(ctx, "delete"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, req)
	delete(f.existing, key(req.Filename, req.Location))
	delete(f.Contents, req.Filename)
	for i, name := range f.Files {
		if name == req.Filename {
			f.Files = append(f.Files[:i:i], f.Files[i+1:]...)
			break
		}
	}
	return nil
}

func (f *FakeService) Exists(ctx context.Context, filename, location string) (bool, error) {
	if err := f.enter(ctx, "exists"); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing[key(filename, location)], nil
}

func (f *FakeService) Execute(ctx context.Context, req client.ExecuteRequest) (client.ExecutionResult, error) {
	if err := f.enter(ctx, "execute"); err != nil {
		return client.ExecutionResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Executed = append(f.Executed, req)
	return f.Result, nil
}

func (f *FakeService) Browse(ctx context.Context, p string) (client.DirectoryListing, error) {
	if err := f.enter(ctx, "browse"); err != nil {
		return client.DirectoryListing{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Browsed = append(f.Browsed, p)
	return client.DirectoryListing{CurrentPath: p, Subdirectories: append([]string(nil), f.Dirs[p]...)}, nil
}

// store must be called with mu held.
func (f *FakeService) store(req client.WriteRequest) {
	f.existing[key(req.Filename, req.Location)] = true
	f.Contents[req.Filename] = req.Content
	for _, name := range f.Files {
		if name == req.Filename {
			return
		}
	}
	f.Files = append(f.Files, req.Filename)
}

func key(filename, location string) string {
	if location == "" {
		location = "."
	}
	return path.Join(location, filename)
}
