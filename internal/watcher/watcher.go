// Package watcher reloads the property dataset when its source files change.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches the configured data files and fires onReload after edits
// settle. Rapid write bursts collapse into a single reload.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	onReload func()
	debounce time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	timer    *time.Timer
	watcher  *fsnotify.Watcher
	started  bool
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher over the given data file paths. onReload is invoked
// after a change has been quiet for the debounce window.
func New(paths []string, onReload func(), logger *zap.Logger) *Watcher {
	files := make(map[string]struct{}, len(paths))
	dirSet := make(map[string]struct{})
	for _, p := range paths {
		clean := filepath.Clean(p)
		files[clean] = struct{}{}
		dirSet[filepath.Dir(clean)] = struct{}{}
	}
	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	return &Watcher{
		files:    files,
		dirs:     dirs,
		onReload: onReload,
		debounce: defaultDebounce,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			w.logger.Warn("Failed to watch data directory",
				zap.String("dir", dir),
				zap.Error(err))
		}
	}
	w.watcher = fw
	w.started = true
	w.mu.Unlock()

	w.logger.Debug("Data watcher started", zap.Strings("dirs", w.dirs))
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("Data watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if _, tracked := w.files[filepath.Clean(ev.Name)]; !tracked {
		return
	}
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	w.logger.Debug("Data file changed",
		zap.String("op", ev.Op.String()),
		zap.String("path", ev.Name))
	w.scheduleReload()
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.timer = nil
		w.mu.Unlock()
		if w.onReload != nil {
			w.onReload()
		}
	})
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
