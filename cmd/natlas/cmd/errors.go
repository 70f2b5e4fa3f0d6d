package cmd

import (
	"strings"

	"github.com/corey/neuroatlas/internal/app"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock returns actionable guidance when a bbolt open fails due to
// lock contention, distinguishing a live `natlas serve` from an unknown holder.
func diagnoseDBLock(root string) string {
	paths := app.NewPaths(root)

	if url, ok := serveRunning(paths); ok {
		return "database is locked by the running natlas serve (" + url + ")\n" +
			"  → stop it first (Ctrl-C in its terminal)\n" +
			"  → or point this command at another database: NATLAS_DB=/tmp/natlas.db"
	}

	return "database is locked by another process\n" +
		"  → find the process:  ps aux | grep 'natlas'\n" +
		"  → kill it:           kill <PID>\n" +
		"  → then retry your command"
}
