// Package watcher follows a deep-link inbox file: writes to the file are
// debounced into change signals and newly appended lines are read back.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/spherenav/internal/log"
)

// DefaultDebounce coalesces bursts of writes into one signal.
const DefaultDebounce = 200 * time.Millisecond

// Watcher signals when a single file changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// DefaultConfig returns the default debounce for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: DefaultDebounce,
	}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if cfg.DebounceDur <= 0 {
		cfg.DebounceDur = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(cfg.Path),
		debounce:  cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches the file's directory, so the file may be created after
// Start. The returned channel receives one signal per debounced burst.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-fire:
			if pending {
				// Drop if the previous signal is still unread.
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports writes and creates of the watched file. Only its
// directory is watched, so the base name identifies it.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.path)
}
