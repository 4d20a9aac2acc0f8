package fixture

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a single world fixture file for changes and calls its
// onReload callback, debouncing rapid saves the way an editor's autosave can
// produce. It does not load the file itself. cmd/nerdblocks' repl wires it
// in with a callback that only logs the change; the running session keeps
// its world — the core blocksworld/session pipeline never depends on it.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
	onReload    func(path string)
	log         *zap.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewWatcher builds a Watcher for path. onReload is invoked (from the
// watcher's own goroutine) whenever the file settles after a write.
func NewWatcher(path string, onReload func(path string), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fixture: creating watcher: %w", err)
	}
	return &Watcher{
		watcher:     w,
		path:        path,
		debounceDur: 300 * time.Millisecond,
		onReload:    onReload,
		log:         log.With(zap.String("category", "fixture")),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching the fixture's parent directory (fsnotify watches
// directories, not individual files, so renames-over-write editors still
// trigger events) and runs the event loop in a goroutine.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("fixture: watching %s: %w", dir, err)
	}
	go w.run()
	return nil
}

// Stop halts the event loop and releases the underlying inotify handle.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	var pendingSince time.Time
	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pendingSince = time.Now()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("fixture watcher error", zap.Error(err))

		case <-debounceTicker.C:
			if pendingSince.IsZero() || time.Since(pendingSince) < w.debounceDur {
				continue
			}
			pendingSince = time.Time{}
			w.log.Debug("reloading fixture", zap.String("path", w.path))
			if w.onReload != nil {
				w.onReload(w.path)
			}
		}
	}
}
