// Package watcher provides live reload for settings plugin files.
//
// The watcher monitors a settings directory and reports the plugin id
// of any schema or user file that is written or created. Rapid
// successive writes to the same plugin are debounced into a single
// notification.
package watcher

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/notebar/internal/settings/loader"
)

// DefaultDebounce is the default settle time for bursts of writes.
const DefaultDebounce = 100 * time.Millisecond

// Handler is called with the plugin id of a changed settings file.
type Handler func(pluginID string)

// Watcher monitors a settings directory for plugin file changes.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	dir      string
	debounce time.Duration

	handlers []Handler
	pending  map[string]*time.Timer

	done    chan struct{}
	wg      sync.WaitGroup
	started bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the settle time for write bursts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for the given settings directory.
func New(dir string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		dir:      dir,
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// OnChange registers a handler. Handlers added after Start still
// receive subsequent notifications.
func (w *Watcher) OnChange(fn Handler) {
	w.mu.Lock()
	w.handlers = append(w.handlers, fn)
	w.mu.Unlock()
}

// Start begins watching. It is an error to start twice.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	if err := w.fsw.Add(w.dir); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Close stops watching and releases the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for id, timer := range w.pending {
		timer.Stop()
		delete(w.pending, id)
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// loop consumes fsnotify events until closed.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			id, ok := pluginIDFromPath(ev.Name)
			if !ok {
				continue
			}
			w.schedule(id)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal to the subsystem; the next
			// successful event resumes normal operation.
		case <-w.done:
			return
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a plugin id.
func (w *Watcher) schedule(pluginID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if timer, ok := w.pending[pluginID]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.pending[pluginID] = time.AfterFunc(w.debounce, func() {
		w.fire(pluginID)
	})
}

// fire delivers a debounced notification.
func (w *Watcher) fire(pluginID string) {
	w.mu.Lock()
	delete(w.pending, pluginID)
	if w.closed {
		w.mu.Unlock()
		return
	}
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, fn := range handlers {
		fn(pluginID)
	}
}

// pluginIDFromPath maps a settings file path to its plugin id.
func pluginIDFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ".user.json"):
		return loader.FileToID(strings.TrimSuffix(base, ".user.json")), true
	case strings.HasSuffix(base, ".json"):
		return loader.FileToID(strings.TrimSuffix(base, ".json")), true
	default:
		return "", false
	}
}
