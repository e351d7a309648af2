package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to config.toml and the theme directory.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	onChange  chan struct{}
	onError   func(error)
	done      chan struct{}
	stopOnce  sync.Once
}

// Watch watches dir (normally ConfigDir) for edits. Bursts of writes within
// debounce produce a single notification. onError may be nil.
func Watch(dir string, debounce time.Duration, onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	// The theme directory is optional.
	_ = fsw.Add(filepath.Join(dir, "theme"))

	if onError == nil {
		onError = func(error) {}
	}
	w := &Watcher{
		fsWatcher: fsw,
		dir:       filepath.Clean(dir),
		debounce:  debounce,
		onChange:  make(chan struct{}, 1),
		onError:   onError,
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes receives a value after each debounced burst of edits.
func (w *Watcher) Changes() <-chan struct{} {
	return w.onChange
}

// Stop ends the watch. Calls after the first do nothing.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.onChange <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.onError(err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == filepath.Join(w.dir, "config.toml") {
		return true
	}
	return filepath.Dir(name) == filepath.Join(w.dir, "theme") && filepath.Ext(name) == ".toml"
}
