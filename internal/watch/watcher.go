// Package watch re-invokes the organization engine when a watched
// directory changes. It is a thin trigger layer outside the engine:
// all it does is debounce filesystem events and call back.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"filenest/internal/log"
)

// Watcher monitors one directory and fires a callback after a quiet
// period follows a burst of create/write events.
type Watcher struct {
	dir       string
	debounce  time.Duration
	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
}

// New creates a watcher for dir. Returns an error when the platform's
// notification facility is unavailable; callers can fall back to Poll.
func New(dir string, debounce time.Duration) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{dir: dir, debounce: debounce, fsWatcher: fsWatcher}, nil
}

// Run blocks, invoking onQuiet after each debounced burst of relevant
// events, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onQuiet func()) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()
	defer w.fsWatcher.Close()

	log.LogWithFields(log.F("directory", w.dir)).Info("watching directory")

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			log.Debug("filesystem event: %s", event)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)
		case <-timerC:
			timer = nil
			timerC = nil
			onQuiet()
		}
	}
}

// relevant filters events down to ones worth re-organizing for:
// creations and completed writes of non-hidden, non-temporary entries.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	return true
}

// Poll is the fallback trigger loop for platforms where fsnotify is
// unavailable: it fires onTick every interval until ctx is cancelled.
func Poll(ctx context.Context, interval time.Duration, onTick func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			onTick()
		}
	}
}
