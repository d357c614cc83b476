// Package watcher reports changes to the knowledge base on disk.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"tripguide/internal/logger"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Operation classifies a file change.
type Operation int

const (
	FileCreated Operation = iota
	FileModified
	FileDeleted
)

// Event is a settled change to the watched knowledge base. Path is the last
// file touched within the debounce window.
type Event struct {
	Path      string
	Operation Operation
}

// FSNotifyWatcher watches a knowledge-base file or directory tree.
type FSNotifyWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
	debounce   time.Duration
}

// NewFSNotifyWatcher creates a watcher for files with the given extensions.
// Extensions match case-insensitively.
func NewFSNotifyWatcher(extensions []string, debounce time.Duration) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = []string{".md", ".json", ".yaml", ".yml", ".toml"}
	}
	exts := make([]string, len(extensions))
	for i, e := range extensions {
		exts[i] = strings.ToLower(e)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FSNotifyWatcher{watcher: w, extensions: exts, debounce: debounce}, nil
}

// Watch starts monitoring path. A directory is watched recursively; a single
// file is watched through its parent directory so editors that replace the
// file on save are still seen. Bursts of changes are coalesced into one Event.
func (w *FSNotifyWatcher) Watch(ctx context.Context, path string) (<-chan Event, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	var only string
	if info.IsDir() {
		if err := w.addTree(path); err != nil {
			return nil, err
		}
	} else {
		only = filepath.Clean(path)
		if err := w.watcher.Add(filepath.Dir(only)); err != nil {
			return nil, err
		}
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		var (
			pending *Event
			timer   *time.Timer
			fire    <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create == fsnotify.Create && only == "" {
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
						_ = w.addTree(event.Name)
						continue
					}
				}
				if only != "" && filepath.Clean(event.Name) != only {
					continue
				}
				if !w.isWatchedExtension(event.Name) {
					continue
				}
				op, ok := operation(event.Op)
				if !ok {
					continue
				}
				pending = &Event{Path: event.Name, Operation: op}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if pending == nil {
					continue
				}
				select {
				case events <- *pending:
				case <-ctx.Done():
					return
				}
				pending = nil
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *FSNotifyWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func operation(op fsnotify.Op) (Operation, bool) {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return FileCreated, true
	case op&fsnotify.Write == fsnotify.Write:
		return FileModified, true
	case op&fsnotify.Remove == fsnotify.Remove, op&fsnotify.Rename == fsnotify.Rename:
		return FileDeleted, true
	default:
		return 0, false
	}
}

func (w *FSNotifyWatcher) isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
