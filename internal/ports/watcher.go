package ports

// Watcher monitors an atlas file and reports changes so the index can be rebuilt.
// The adapter (fsnotify) filters out unrelated files in the same directory and
// editor swap files before invoking onChange. Only one Watch call should be
// active at a time.
type Watcher interface {
	// Watch starts monitoring path. onChange is called with the absolute path
	// of the changed file. The callback may be invoked from any goroutine.
	// Returns an error if the containing directory doesn't exist or cannot be watched.
	Watch(path string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
