package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropindex/internal/config"
	"dropindex/internal/indexer"
)

// countingIndexer records which paths were indexed or removed.
type countingIndexer struct {
	mu      sync.Mutex
	indexed []string
	removed []string
}

func (c *countingIndexer) IndexFile(ctx context.Context, path string) indexer.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexed = append(c.indexed, path)
	return indexer.Result{Path: path, Indexed: true}
}

func (c *countingIndexer) RemoveFile(ctx context.Context, path string) indexer.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = append(c.removed, path)
	return indexer.Result{Path: path, Removed: true}
}

func (c *countingIndexer) indexedPaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.indexed...)
}

func newTestWatcher(t *testing.T, ix FileIndexer) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.WatchDir = dir

	w, err := New(ix, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	// Collapse the waits so tests run instantly.
	w.sleep = func(time.Duration) {}
	return w, dir
}

func TestHandleCreate_StableFileIndexed(t *testing.T) {
	ix := &countingIndexer{}
	w, dir := newTestWatcher(t, ix)

	path := filepath.Join(dir, "stable.txt")
	require.NoError(t, os.WriteFile(path, []byte("done writing"), 0o644))

	w.handleCreate(context.Background(), path)

	assert.Equal(t, []string{path}, ix.indexedPaths())
}

func TestHandleCreate_GrowingFileAbandoned(t *testing.T) {
	ix := &countingIndexer{}
	w, dir := newTestWatcher(t, ix)

	path := filepath.Join(dir, "growing.txt")
	require.NoError(t, os.WriteFile(path, []byte("start"), 0o644))

	// Simulate a file whose size changes between the two samples.
	var calls atomic.Int32
	w.fileSize = func(string) (int64, error) {
		return int64(calls.Add(1)) * 100, nil
	}

	w.handleCreate(context.Background(), path)

	assert.Empty(t, ix.indexedPaths(), "a growing file must not be indexed")
}

func TestHandleCreate_VanishedFileAbandoned(t *testing.T) {
	ix := &countingIndexer{}
	w, dir := newTestWatcher(t, ix)

	w.handleCreate(context.Background(), filepath.Join(dir, "gone.txt"))
	assert.Empty(t, ix.indexedPaths())
}

func TestHandleCreate_InflightDedupe(t *testing.T) {
	ix := &countingIndexer{}
	w, dir := newTestWatcher(t, ix)

	path := filepath.Join(dir, "burst.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	// Hold the first pass inside the settle wait while more arrive.
	release := make(chan struct{})
	started := make(chan struct{}, 4)
	w.sleep = func(time.Duration) {
		started <- struct{}{}
		<-release
	}

	go w.handleCreate(context.Background(), path)
	<-started

	// These duplicates find the path in-flight and bail immediately.
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.handleCreate(context.Background(), path)
		}()
	}
	wg.Wait()
	close(release)

	// Wait for the first pass to finish.
	assert.Eventually(t, func() bool {
		return len(ix.indexedPaths()) == 1
	}, time.Second, 10*time.Millisecond, "burst of events indexes exactly once")

	// In-flight is cleared afterwards: the path can be indexed again.
	w.sleep = func(time.Duration) {}
	w.handleCreate(context.Background(), path)
	assert.Len(t, ix.indexedPaths(), 2)
}

func TestDispatch_IgnoresIneligible(t *testing.T) {
	ix := &countingIndexer{}
	w, dir := newTestWatcher(t, ix)

	for _, name := range []string{"movie.crdownload", ".hidden.txt", "tool.exe"} {
		assert.False(t, w.eligible(filepath.Join(dir, name)), name)
	}
	assert.True(t, w.eligible(filepath.Join(dir, "paper.pdf")))
}

func TestHandleRemove(t *testing.T) {
	ix := &countingIndexer{}
	w, dir := newTestWatcher(t, ix)

	var changes atomic.Int32
	w.OnChange = func() { changes.Add(1) }

	path := filepath.Join(dir, "deleted.txt")
	w.handleRemove(context.Background(), path)

	ix.mu.Lock()
	removed := append([]string(nil), ix.removed...)
	ix.mu.Unlock()
	assert.Equal(t, []string{path}, removed)
	assert.Equal(t, int32(1), changes.Load())
}

func TestRun_EndToEnd(t *testing.T) {
	ix := &countingIndexer{}
	w, dir := newTestWatcher(t, ix)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	path := filepath.Join(dir, "arrival.md")
	require.NoError(t, os.WriteFile(path, []byte("# fresh download"), 0o644))

	assert.Eventually(t, func() bool {
		for _, p := range ix.indexedPaths() {
			if p == path {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}
