package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/corey/neuroatlas/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.Watcher = (*Watcher)(nil)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func startWatcher(t *testing.T, path string) (*Watcher, <-chan string) {
	t.Helper()
	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(path, func(p string) { changed <- p }))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return w, changed
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	atlasFile := filepath.Join(dir, "atlas.txt")
	require.NoError(t, os.WriteFile(atlasFile, []byte("0 1 A\n"), 0644))

	_, changed := startWatcher(t, atlasFile)

	require.NoError(t, os.WriteFile(atlasFile, []byte("0 2 B\n"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for atlas change")
	assert.Equal(t, atlasFile, path)
}

func TestWatcher_DetectsFileCreatedLater(t *testing.T) {
	// The atlas may not exist yet when watching starts.
	dir := t.TempDir()
	atlasFile := filepath.Join(dir, "atlas.txt")

	_, changed := startWatcher(t, atlasFile)

	require.NoError(t, os.WriteFile(atlasFile, []byte("0 1 A\n"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for new atlas")
	assert.Equal(t, atlasFile, path)
}

func TestWatcher_DetectsAtomicReplace(t *testing.T) {
	// Editors write a temp file and rename it over the original.
	dir := t.TempDir()
	atlasFile := filepath.Join(dir, "atlas.txt")
	require.NoError(t, os.WriteFile(atlasFile, []byte("0 1 A\n"), 0644))

	_, changed := startWatcher(t, atlasFile)

	tmp := filepath.Join(dir, "atlas.txt.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("0 9 Z\n"), 0644))
	require.NoError(t, os.Rename(tmp, atlasFile))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for replaced atlas")
	assert.Equal(t, atlasFile, path)
}

func TestWatcher_DetectsDeletedFile(t *testing.T) {
	dir := t.TempDir()
	atlasFile := filepath.Join(dir, "atlas.txt")
	require.NoError(t, os.WriteFile(atlasFile, []byte("0 1 A\n"), 0644))

	_, changed := startWatcher(t, atlasFile)

	require.NoError(t, os.Remove(atlasFile))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for deleted atlas")
	assert.Equal(t, atlasFile, path)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	atlasFile := filepath.Join(dir, "atlas.txt")
	require.NoError(t, os.WriteFile(atlasFile, []byte("0 1 A\n"), 0644))

	_, changed := startWatcher(t, atlasFile)

	os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, ".atlas.txt.swp"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "labels.txt"), []byte("x"), 0644)

	_, ok := waitForCallback(changed, 500*time.Millisecond)
	assert.False(t, ok, "siblings must not trigger a reload")

	require.NoError(t, os.WriteFile(atlasFile, []byte("0 2 B\n"), 0644))
	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for atlas")
	assert.Equal(t, atlasFile, path)
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	atlasFile := filepath.Join(dir, "atlas.txt")
	require.NoError(t, os.WriteFile(atlasFile, []byte("0 1 A\n"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	calls := 0
	require.NoError(t, w.Watch(atlasFile, func(string) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	time.Sleep(50 * time.Millisecond)

	f, err := os.OpenFile(atlasFile, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.WriteString("1 1 A\n")
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, calls, 1)
	assert.Less(t, calls, 5, "burst of writes should collapse")
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(filepath.Join(t.TempDir(), "nope", "atlas.txt"), func(string) {})
	assert.Error(t, err)
}

func TestWatcher_StopCleanup(t *testing.T) {
	dir := t.TempDir()
	atlasFile := filepath.Join(dir, "atlas.txt")

	w, err := NewWatcher()
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	err = w.Watch(atlasFile, func(path string) {
		mu.Lock()
		callCount++
		mu.Unlock()
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, w.Stop())

	mu.Lock()
	countAfterStop := callCount
	mu.Unlock()

	// Write after stop: no callback
	os.WriteFile(atlasFile, []byte("0 1 A\n"), 0644)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	countAfterWrite := callCount
	mu.Unlock()

	assert.Equal(t, countAfterStop, countAfterWrite, "callbacks fired after Stop()")

	// Double-stop should be safe
	assert.NoError(t, w.Stop())
}

func TestShouldIgnorePath(t *testing.T) {
	assert.True(t, shouldIgnorePath("/x/.atlas.txt.swp"))
	assert.True(t, shouldIgnorePath("/x/atlas.txt~"))
	assert.True(t, shouldIgnorePath("/x/.#atlas.txt"))
	assert.False(t, shouldIgnorePath("/x/atlas.txt"))
}
