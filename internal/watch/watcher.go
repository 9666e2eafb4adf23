package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"nexus/internal/log"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// FileModification represents a file event detected by the watcher
type FileModification struct {
	Path      string
	Info      os.FileInfo
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors a directory tree for file changes using fsnotify.
// Subdirectories are watched as they appear.
type Watcher struct {
	// Root of the watched tree
	root string

	// Patterns matched against paths relative to root, and base names
	ignore []glob.Glob

	// Directories being watched
	directories []string

	// Channel to receive file modifications
	fileModChan chan FileModification

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the directories list
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a watcher for the tree at root. Ignore patterns use glob
// syntax and must already be valid.
func New(root string, ignore []string) (*Watcher, error) {
	patterns := make([]glob.Glob, 0, len(ignore))
	for _, p := range ignore {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		patterns = append(patterns, g)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		root:        filepath.Clean(root),
		ignore:      patterns,
		directories: []string{},
		fileModChan: make(chan FileModification, 64),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// Root returns the watched tree's root.
func (w *Watcher) Root() string {
	return w.root
}

// Ignored reports whether path matches an ignore pattern.
func (w *Watcher) Ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, g := range w.ignore {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// AddDirectory watches dir and every non-ignored directory below it.
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.Ignored(path) {
			return filepath.SkipDir
		}
		return w.addOne(path)
	})
}

func (w *Watcher) addOne(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existingDir := range w.directories {
		if existingDir == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// FileChannel returns the channel that delivers file modification events
func (w *Watcher) FileChannel() <-chan FileModification {
	return w.fileModChan
}

// Start begins the file watching process using fsnotify
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	stop := w.stopChan
	w.mutex.Unlock()

	if err := w.AddDirectory(w.root); err != nil {
		w.mutex.Lock()
		w.running = false
		w.mutex.Unlock()
		return err
	}

	go w.loop(stop)

	log.LogWithFields(log.F("root", w.root)).Info("Watcher started")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}) {
	defer close(w.fileModChan)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event, stop)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, stop <-chan struct{}) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if w.Ignored(event.Name) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Removed again before we got to it.
		if !os.IsNotExist(err) {
			log.LogWithFields(log.F("file", event.Name), log.F("error", err)).Error("Error stating file")
		}
		return
	}

	if info.IsDir() {
		if event.Op.Has(fsnotify.Create) {
			if err := w.AddDirectory(event.Name); err != nil {
				log.LogWithError(err).Warn("Could not watch new directory")
			}
		}
		return
	}

	mod := FileModification{
		Path:      event.Name,
		Info:      info,
		Timestamp: time.Now(),
		Op:        event.Op,
	}

	select {
	case w.fileModChan <- mod:
	case <-stop:
	default:
		log.LogWithFields(log.F("file", event.Name)).Warn("Event channel is full, dropped event")
	}
}

// Stop halts the file watching process. The file channel is closed once
// the event loop exits. A stopped watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	w.running = false

	log.Info("Watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the list of directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}
