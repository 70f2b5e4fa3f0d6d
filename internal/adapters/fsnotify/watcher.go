// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It watches a single atlas file. Editors usually save by writing a temp file and
// renaming it over the original, which drops a watch placed on the file itself,
// so the parent directory is watched and events are filtered by name.
// Rapid events are debounced (editors often trigger multiple writes per save)
// so onChange runs once, after the file has settled.
package fsnotify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/corey/neuroatlas/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// Editor droppings that share the atlas directory.
var ignoreSuffixes = []string{
	".swp",
	".swx",
	".tmp",
	"~",
}

const debounceInterval = 50 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring the file at path.
// onChange is called with the absolute path of the file after each change.
func (w *Watcher) Watch(path string, onChange func(filePath string)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	} else if !info.IsDir() {
		return fmt.Errorf("watch %s: %s is not a directory", path, dir)
	}
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// Debounce on the trailing edge: a save often lands as truncate + write,
	// and the callback must see the final content.
	var timer *time.Timer
	fire := func() {
		select {
		case <-w.done:
			return
		default:
		}
		onChange(absPath)
	}

	go func() {
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath || shouldIgnorePath(event.Name) {
					continue
				}
				if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
					continue
				}
				if timer == nil {
					timer = time.AfterFunc(debounceInterval, fire)
				} else {
					timer.Reset(debounceInterval)
				}

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// fsnotify recovers on its own; surface it for diagnosis only
				logger.L().Warn("watcher_error", "path", absPath, "error", err)

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// shouldIgnorePath returns true for editor swap and backup files.
func shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return strings.HasPrefix(base, ".#")
}
