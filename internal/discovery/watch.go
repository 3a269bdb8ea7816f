package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/getmockd/filemock/pkg/logging"
)

// DefaultDebounceInterval is the quiet period before a change is reported.
const DefaultDebounceInterval = 100 * time.Millisecond

// Watcher reports changes to files matching a set of glob patterns. The
// mock engine does not need it; it serves tooling that re-validates mock
// files as they are edited.
type Watcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	recursive map[string]bool
}

// NewWatcher creates a watcher for patterns. A zero interval uses
// DefaultDebounceInterval.
func NewWatcher(patterns []string, interval time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:   fw,
		interval:  interval,
		logger:    logger,
		recursive: make(map[string]bool),
	}
	for _, p := range patterns {
		w.patterns = append(w.patterns, filepath.Clean(p))
	}
	return w, nil
}

// Run watches until ctx is cancelled, calling onChange after each burst of
// relevant events. It blocks and closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer func() { _ = w.watcher.Close() }()

	watched := 0
	for _, pattern := range w.patterns {
		n, err := w.addPattern(pattern)
		if err != nil {
			w.logger.Warn("cannot watch mock pattern", "pattern", pattern, "error", err)
			continue
		}
		watched += n
	}
	if watched == 0 {
		return errors.New("no existing directories to watch")
	}
	w.logger.Info("watching mock files", "patterns", w.patterns, "directories", watched)

	debounce := newDebouncer(w.interval)
	defer debounce.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("mock file event", "path", event.Name, "op", event.Op.String())
			debounce.trigger(onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// addPattern watches the static base directory of pattern, plus every
// subdirectory when the pattern contains "**".
func (w *Watcher) addPattern(pattern string) (int, error) {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)
	recursive := strings.Contains(pattern, "**")

	if !recursive {
		if err := w.watcher.Add(base); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return w.addTree(base)
}

func (w *Watcher) addTree(root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.mu.Lock()
		w.recursive[path] = true
		w.mu.Unlock()
		count++
		return nil
	})
	return count, err
}

// relevant reports whether event touches a mock file. New directories
// under a recursive watch are added as they appear.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.mu.Lock()
			parentRecursive := w.recursive[filepath.Dir(event.Name)]
			w.mu.Unlock()
			if parentRecursive {
				if _, err := w.addTree(event.Name); err != nil {
					w.logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
				}
				return true
			}
			return false
		}
	}

	for _, pattern := range w.patterns {
		if ok, _ := doublestar.PathMatch(pattern, event.Name); ok {
			return true
		}
	}
	return false
}

// debouncer collapses rapid events into one callback after a quiet period.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool

	// running is held while a callback executes so stop can wait for it.
	running sync.Mutex
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.running.Lock()
		defer d.running.Unlock()

		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			callback()
		}
	})
}

// stop cancels any pending callback and waits for a running one.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.running.Lock()
	defer d.running.Unlock()
}
