package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is how often the file is stat'ed in polling mode
const DefaultPollInterval = time.Second

// ErrAlreadyStarted is returned by a second Start
var ErrAlreadyStarted = errors.New("watcher already started")

// FileWatcher calls OnChange after the watched file was written, replaced
// or removed. The parent directory is watched so that editors replacing the
// file through a rename are noticed.
type FileWatcher struct {
	path         string
	onChange     func()
	debouncer    *Debouncer
	pollInterval time.Duration
	forcePoll    bool
	logger       *log.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	polling bool
	fsw     *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	lastMod  time.Time
	lastSize int64
	exists   bool
}

// Option configures a FileWatcher
type Option func(*FileWatcher)

// WithDebounce sets the debounce window
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) { w.debouncer = NewDebouncer(d) }
}

// WithPollInterval sets the polling interval
func WithPollInterval(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithPolling disables file notifications
func WithPolling() Option {
	return func(w *FileWatcher) { w.forcePoll = true }
}

// WithLogger sets the logger for watch errors
func WithLogger(l *log.Logger) Option {
	return func(w *FileWatcher) { w.logger = l }
}

// NewFileWatcher creates a watcher for path. Nothing is watched until Start.
func NewFileWatcher(path string, onChange func(), opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	w := &FileWatcher{
		path:         abs,
		onChange:     onChange,
		debouncer:    NewDebouncer(0),
		pollInterval: DefaultPollInterval,
		logger:       log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched
func (w *FileWatcher) Path() string {
	return w.path
}

// Polling reports whether the watcher fell back to polling
func (w *FileWatcher) Polling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

// Start begins watching. When file notifications cannot be set up the
// watcher polls instead.
func (w *FileWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}
	w.started = true
	w.done = make(chan struct{})
	w.snapshot()

	if !w.forcePoll {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			err = fsw.Add(filepath.Dir(w.path))
			if err != nil {
				fsw.Close()
			}
		}
		if err == nil {
			w.fsw = fsw
			w.wg.Add(1)
			go w.notifyLoop(fsw)
			return nil
		}
		w.logger.Warn("file notifications unavailable, polling", "path", w.path, "err", err)
	}

	w.polling = true
	w.wg.Add(1)
	go w.pollLoop()
	return nil
}

// Stop ends watching and drops a pending change. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.done)
	fsw := w.fsw
	w.mu.Unlock()

	if fsw != nil {
		fsw.Close()
	}
	w.wg.Wait()
	w.debouncer.Cancel()
}

func (w *FileWatcher) changed() {
	w.debouncer.Trigger(w.onChange)
}

func (w *FileWatcher) notifyLoop(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				w.changed()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watching document", "path", w.path, "err", err)
		}
	}
}

func (w *FileWatcher) pollLoop() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.mu.Lock()
			changed := w.snapshot()
			w.mu.Unlock()
			if changed {
				w.changed()
			}
		}
	}
}

// snapshot records the file's stat and reports whether it differs from the
// previous one. Caller holds mu.
func (w *FileWatcher) snapshot() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		changed := w.exists
		w.exists = false
		return changed
	}
	changed := !w.exists || !info.ModTime().Equal(w.lastMod) || info.Size() != w.lastSize
	w.exists = true
	w.lastMod = info.ModTime()
	w.lastSize = info.Size()
	return changed
}
