package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"nexus/internal/client"
	"nexus/internal/errors"
	"nexus/internal/log"
	"nexus/internal/navigator"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultDebounce is the quiet period used when none is configured.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultMaxSize caps what a single push will upload.
	DefaultMaxSize int64 = 1 << 20
)

// Status represents the current state of a pusher
type Status struct {
	Running      bool      // Whether the pusher is currently active
	Directories  []string  // Local directories being watched
	LastActivity time.Time // Time of the last push attempt
	FilesPushed  int       // Successful creates and edits
	Failures     int       // Pushes that returned an error
}

// Result describes one push of a local file.
type Result struct {
	Path     string // Local path
	Filename string // Name sent to the service
	Location string // Directory sent to the service
	Created  bool   // Create rather than edit
	Err      error
}

// Pusher mirrors local file changes to the file service. Each changed file
// is checked with the exists endpoint and then sent through edit when the
// service already has it, or create when it does not.
type Pusher struct {
	svc      client.FileService
	watcher  *Watcher
	base     string
	debounce time.Duration
	maxSize  int64

	// Statistics
	pushed       int
	failed       int
	lastActivity time.Time

	// Called after every push attempt
	callback func(Result)

	timers map[string]*time.Timer
	queue  chan string
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Lock for statistics, timers and running state
	mutex sync.RWMutex

	running bool
}

// Option configures a Pusher.
type Option func(*Pusher)

// WithBase sets the service directory the local root maps to.
func WithBase(location string) Option {
	return func(p *Pusher) {
		p.base = strings.Trim(filepath.ToSlash(location), "/")
		if p.base == "" {
			p.base = navigator.Root
		}
	}
}

// WithDebounce sets how long a file must stay quiet before it is pushed.
func WithDebounce(d time.Duration) Option {
	return func(p *Pusher) { p.debounce = d }
}

// WithMaxSize sets the largest file that will be pushed.
func WithMaxSize(n int64) Option {
	return func(p *Pusher) { p.maxSize = n }
}

// WithCallback registers a function called after each push attempt.
func WithCallback(cb func(Result)) Option {
	return func(p *Pusher) { p.callback = cb }
}

// NewPusher creates a pusher for the local tree at root.
func NewPusher(svc client.FileService, root string, ignore []string, opts ...Option) (*Pusher, error) {
	watcher, err := New(root, ignore)
	if err != nil {
		return nil, err
	}

	p := &Pusher{
		svc:      svc,
		watcher:  watcher,
		base:     navigator.Root,
		debounce: DefaultDebounce,
		maxSize:  DefaultMaxSize,
		timers:   make(map[string]*time.Timer),
		queue:    make(chan string, 64),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Start begins watching and pushing. Pushing stops when ctx is done or
// Stop is called.
func (p *Pusher) Start(ctx context.Context) error {
	p.mutex.Lock()
	if p.running {
		p.mutex.Unlock()
		return fmt.Errorf("pusher is already running")
	}
	p.mutex.Unlock()

	if err := p.watcher.Start(); err != nil {
		return fmt.Errorf("error starting watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mutex.Lock()
	p.running = true
	p.cancel = cancel
	p.mutex.Unlock()

	p.wg.Add(2)
	go p.collect(ctx)
	go p.drain(ctx)

	log.LogWithFields(
		log.F("root", p.watcher.Root()),
		log.F("location", p.base),
		log.F("debounce", p.debounce),
	).Info("Pushing local changes")
	return nil
}

// Stop halts watching and waits for an in-flight push to finish.
func (p *Pusher) Stop() {
	p.mutex.Lock()
	if !p.running {
		p.mutex.Unlock()
		return
	}
	p.running = false
	for path, t := range p.timers {
		t.Stop()
		delete(p.timers, path)
	}
	cancel := p.cancel
	p.mutex.Unlock()

	cancel()
	p.watcher.Stop()
	p.wg.Wait()
}

// SetCallback sets a function to be called after each push attempt
func (p *Pusher) SetCallback(cb func(Result)) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.callback = cb
}

// Status returns the current status of the pusher
func (p *Pusher) Status() Status {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return Status{
		Running:      p.running,
		Directories:  p.watcher.GetDirectories(),
		LastActivity: p.lastActivity,
		FilesPushed:  p.pushed,
		Failures:     p.failed,
	}
}

// collect turns watcher events into debounced push requests.
func (p *Pusher) collect(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case mod, ok := <-p.watcher.FileChannel():
			if !ok {
				return
			}
			p.schedule(ctx, mod.Path)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pusher) schedule(ctx context.Context, path string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if t, ok := p.timers[path]; ok {
		t.Reset(p.debounce)
		return
	}
	p.timers[path] = time.AfterFunc(p.debounce, func() {
		p.mutex.Lock()
		delete(p.timers, path)
		p.mutex.Unlock()

		select {
		case p.queue <- path:
		case <-ctx.Done():
		}
	})
}

// drain pushes queued paths one at a time.
func (p *Pusher) drain(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case path := <-p.queue:
			p.Push(ctx, path)
		case <-ctx.Done():
			return
		}
	}
}

// Target maps a local path under the watched root to the filename and
// service location it is pushed to.
func (p *Pusher) Target(path string) (filename, location string, err error) {
	rel, err := filepath.Rel(p.watcher.Root(), path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", errors.NewValidationError(fmt.Sprintf("%s is outside %s", path, p.watcher.Root()), "path")
	}

	location = p.base
	dir := filepath.Dir(rel)
	if dir != "." {
		for _, seg := range strings.Split(filepath.ToSlash(dir), "/") {
			location = navigator.Descend(location, seg)
		}
	}
	return filepath.Base(rel), location, nil
}

// Push sends the current content of path to the service.
func (p *Pusher) Push(ctx context.Context, path string) Result {
	res := Result{Path: path}
	res.Err = p.push(ctx, &res)

	p.mutex.Lock()
	p.lastActivity = time.Now()
	if res.Err != nil {
		p.failed++
	} else {
		p.pushed++
	}
	cb := p.callback
	p.mutex.Unlock()

	logger := log.LogWithFields(
		log.F("file", res.Filename),
		log.F("location", res.Location),
		log.F("created", res.Created),
	)
	if res.Err != nil {
		logger.WithError(res.Err).Warn("Push failed")
	} else {
		logger.Info("Pushed file")
	}

	if cb != nil {
		cb(res)
	}
	return res
}

func (p *Pusher) push(ctx context.Context, res *Result) error {
	filename, location, err := p.Target(res.Path)
	if err != nil {
		return err
	}
	res.Filename, res.Location = filename, location

	info, err := os.Stat(res.Path)
	if err != nil {
		return errors.NewFileError("cannot read local file", res.Path, err)
	}
	if info.Size() > p.maxSize {
		return errors.NewValidationError(fmt.Sprintf("%s is %s, larger than the %s push limit",
			filename, humanize.Bytes(uint64(info.Size())), humanize.Bytes(uint64(p.maxSize))), "size")
	}

	if ok, mime := textual(res.Path); !ok {
		return errors.NewValidationError(fmt.Sprintf("%s is not a text file (%s)", filename, mime), "content")
	}

	content, err := os.ReadFile(res.Path)
	if err != nil {
		return errors.NewFileError("cannot read local file", res.Path, err)
	}

	exists, err := p.svc.Exists(ctx, filename, location)
	if err != nil {
		return errors.Wrap(err, "failed to check existing file")
	}

	req := client.WriteRequest{Filename: filename, Content: string(content), Location: location}
	if exists {
		if err := p.svc.Edit(ctx, req); err != nil {
			return errors.Wrap(err, "failed to update file")
		}
		return nil
	}

	res.Created = true
	if err := p.svc.Create(ctx, req); err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	return nil
}

// textual reports whether the file at path holds text, and its detected
// MIME type. The service stores file content as strings.
func textual(path string) (bool, string) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false, "unknown"
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true, mtype.String()
		}
	}
	return false, mtype.String()
}
