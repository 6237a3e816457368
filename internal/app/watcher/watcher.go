package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"lens/internal/app/paths"
	"lens/internal/config/logger"
)

// Handler receives events that passed the filter and the debouncer
type Handler func(event Event)

// Watcher observes one workspace root recursively and feeds every relevant
// filesystem change through filter → debounce → handler. Delivery is
// best-effort: watch errors are logged and observation continues.
type Watcher interface {
	Start() error
	Close()
}

// watcher implements the Watcher interface for a single root
type watcher struct {
	root      string
	filter    Filter
	debouncer Debouncer
	handler   Handler
	fsWatcher *fsnotify.Watcher
	log       logger.Logger
	dirs      map[string]struct{}
	mu        sync.RWMutex
	closed    bool
}

// NewWatcher creates a Watcher for one workspace root
func NewWatcher(root string, filter Filter, debouncer Debouncer, handler Handler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &watcher{
		root:      paths.Normalize(root),
		filter:    filter,
		debouncer: debouncer,
		handler:   handler,
		fsWatcher: fsw,
		log:       log.WithComponent("WATCHER"),
		dirs:      make(map[string]struct{}),
	}, nil
}

// Start adds the root tree to the watch set and begins dispatching events
func (w *watcher) Start() error {
	if err := w.addDirRecursive(w.root); err != nil {
		w.fsWatcher.Close()

		return err
	}

	go w.processEvents()

	w.log.Debug().Msgf("Watching %s", w.root)

	return nil
}

// Close stops event processing and releases the underlying watch handles
func (w *watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	w.fsWatcher.Close()
	w.debouncer.Stop()
}

// processEvents drains fsnotify until the watcher is closed. Errors from
// the notification mechanism are logged and never terminate the loop; the
// worst case is missed events, not a crash.
func (w *watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

			w.log.Error().Err(err).Msg("Watch error")
		}
	}
}

// handleEvent classifies a single fsnotify event
func (w *watcher) handleEvent(event fsnotify.Event) {
	if !isRelevantEvent(event) {
		return
	}

	path := paths.Normalize(event.Name)

	switch {
	case event.Has(fsnotify.Create):
		w.handleCreate(path)
	case event.Has(fsnotify.Write):
		w.dispatch(Event{Path: path, Op: OpUpdate, At: time.Now()})
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// A rename notifies on the old path only; the new path arrives as
		// its own create. Treat the old path as deleted.
		w.handleRemove(path)
	}
}

// handleCreate dispatches a file create, or starts watching a new directory.
// A directory appearing wholesale (mkdir -p, checkout, rename in) delivers
// no events for contents it already has, so those are synthesized.
func (w *watcher) handleCreate(path string) {
	info, err := os.Stat(path)
	if err != nil {
		// Already gone again (short-lived temp file); let the pipeline
		// decide what a create of a missing file means.
		w.dispatch(Event{Path: path, Op: OpCreate, At: time.Now()})

		return
	}

	if !info.IsDir() {
		w.dispatch(Event{Path: path, Op: OpCreate, At: time.Now()})

		return
	}

	if !w.filter.AllowDir(path) {
		return
	}

	if err := w.addDirRecursive(path); err != nil {
		w.log.Warn().Err(err).Msgf("Failed to watch new directory %s", path)
	}

	w.scanDir(path)
}

// handleRemove distinguishes directory removals from file removals. The
// notification mechanism does not reliably deliver per-file deletes for a
// removed directory's contents, so a watched directory expands to one bulk
// removal event.
func (w *watcher) handleRemove(path string) {
	if w.forgetDir(path) {
		w.dispatch(Event{Path: path, Op: OpDeleteDir, At: time.Now()})

		return
	}

	w.dispatch(Event{Path: path, Op: OpDelete, At: time.Now()})
}

// dispatch runs the filter and the debouncer, then hands the event over
func (w *watcher) dispatch(event Event) {
	w.mu.RLock()
	closed := w.closed
	w.mu.RUnlock()

	if closed {
		return
	}

	if event.Op == OpDeleteDir {
		if !w.filter.AllowDir(event.Path) {
			return
		}
	} else if !w.filter.Allow(event.Path) {
		return
	}

	if !w.debouncer.Accept(event.Path, event.Op) {
		return
	}

	w.handler(event)
}

// addDirRecursive adds a directory and all allowed subdirectories to the
// watch list
func (w *watcher) addDirRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if !w.filter.AllowDir(path) {
			return filepath.SkipDir
		}

		if err := w.fsWatcher.Add(path); err != nil {
			w.log.Warn().Err(err).Msgf("Failed to watch directory %s", path)

			return nil
		}

		w.trackDir(path)

		return nil
	})
}

// scanDir synthesizes create events for files already inside dir
func (w *watcher) scanDir(dir string) {
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			if !w.filter.AllowDir(path) {
				return filepath.SkipDir
			}

			return nil
		}

		w.dispatch(Event{Path: paths.Normalize(path), Op: OpCreate, At: time.Now()})

		return nil
	})
}

// trackDir records a watched directory
func (w *watcher) trackDir(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.dirs[paths.Key(path)] = struct{}{}
}

// forgetDir reports whether path was a watched directory, dropping it and
// everything under it from the tracked set. fsnotify discards its own
// handles for deleted directories.
func (w *watcher) forgetDir(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := paths.Key(path)
	if _, ok := w.dirs[key]; !ok {
		return false
	}

	for tracked := range w.dirs {
		if paths.HasPrefix(tracked, key) {
			delete(w.dirs, tracked)
		}
	}

	return true
}

// isRelevantEvent returns true if the event can affect document state
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
