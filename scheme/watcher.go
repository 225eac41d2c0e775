package scheme

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/keybind"
)

const defaultDebounce = 200 * time.Millisecond

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long successive file events are coalesced. Editors
// tend to emit several events per save.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger routes watcher logging.
func WithLogger(l *keybind.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher reloads and reapplies a scheme file when it changes on disk.
type Watcher struct {
	engine  *keybind.Engine
	actions Actions
	path    string
	base    string

	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *keybind.Logger

	// reloadMu serializes reloads; they run on timer goroutines and a slow
	// reload must not overlap the next one.
	reloadMu sync.Mutex

	mu      sync.Mutex
	current *Scheme
	applied *Applied
	closed  bool

	wg sync.WaitGroup
}

// Watch loads and applies the scheme file, then keeps it applied across
// edits. The initial load must succeed; later reloads that fail keep the
// previous bindings active and log the failure.
func Watch(e *keybind.Engine, path string, actions Actions, opts ...WatchOption) (*Watcher, error) {
	if e == nil {
		return nil, ErrNilEngine
	}

	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	applied, err := Apply(e, s, actions)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		applied.Close()
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watching the directory is more reliable than watching the file:
	// editors often replace the file via temp + rename.
	cleaned := filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(cleaned)); err != nil {
		applied.Close()
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(cleaned), err)
	}

	w := &Watcher{
		engine:   e,
		actions:  actions,
		path:     cleaned,
		base:     filepath.Base(cleaned),
		fsw:      fsw,
		debounce: defaultDebounce,
		logger:   keybind.NewLogger(keybind.DefaultLoggerConfig()).WithComponent("scheme"),
		current:  s,
		applied:  applied,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	// Editors save with bursts of create/write/rename events, and reading
	// the file on the first one can catch a half-written state. The timer
	// re-arms on every event so the reload runs once the burst settles.
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.shouldReload(event) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error: %v", err)
		}
	}
}

func (w *Watcher) shouldReload(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == w.path {
		return true
	}
	// Temp-file save patterns can report partial paths.
	return filepath.Base(name) == w.base
}

func (w *Watcher) reload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	s, err := Load(w.path)
	if err != nil {
		w.logger.Error("scheme reload failed, keeping previous bindings: %v", err)
		return
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	old := w.applied
	w.mu.Unlock()

	if old != nil {
		old.Close()
	}
	applied, err := Apply(w.engine, s, w.actions)
	if err != nil {
		w.logger.Error("scheme apply failed: %v", err)
		return
	}

	w.mu.Lock()
	if w.closed {
		// Lost the race with Close; undo the registrations.
		w.mu.Unlock()
		applied.Close()
		return
	}
	w.current = s
	w.applied = applied
	w.mu.Unlock()

	if skips := applied.Skips(); len(skips) > 0 {
		w.logger.Warn("scheme %s reloaded with %d skipped bindings", w.path, len(skips))
	} else {
		w.logger.Info("scheme %s reloaded", w.path)
	}
}

// Scheme returns the most recently applied scheme.
func (w *Watcher) Scheme() *Scheme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Applied returns the registrations from the most recent apply.
func (w *Watcher) Applied() *Applied {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.applied
}

// Close stops watching and unregisters the scheme's bindings. Close is
// idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	applied := w.applied
	w.applied = nil
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	if applied != nil {
		applied.Close()
	}
	return err
}
