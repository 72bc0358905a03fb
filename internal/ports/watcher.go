package ports

// Watcher monitors the shared data directory for status-file changes so the
// consumer can react to publishes without polling. The adapter (fsnotify)
// must debounce rapid events — the producer rewrites the status file many
// times per second at high tick rates. Only one Watch call should be
// active at a time.
type Watcher interface {
	// Watch starts monitoring dir. onChange is called with the absolute
	// path of each changed file within it. The callback may be invoked
	// from any goroutine. Returns an error if the directory doesn't
	// exist or permissions are insufficient.
	Watch(dir string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
