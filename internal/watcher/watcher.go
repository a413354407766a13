package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"dropindex/internal/config"
	"dropindex/internal/indexer"
)

// FileIndexer indexes and removes individual files.
type FileIndexer interface {
	IndexFile(ctx context.Context, path string) indexer.Result
	RemoveFile(ctx context.Context, path string) indexer.Result
}

// Watcher reacts to filesystem events in the watched directory. New
// files are indexed after they settle; removed files have their records
// deleted. Events for temp artifacts and hidden files are ignored.
type Watcher struct {
	fsw     *fsnotify.Watcher
	indexer FileIndexer
	cfg     *config.Config

	// OnChange is invoked after each successful index or removal. Used
	// to refresh caches and UIs; may be nil.
	OnChange func()

	// inflight holds paths currently going through the stability check,
	// so a burst of events for one file triggers one indexing pass.
	mu       sync.Mutex
	inflight map[string]struct{}

	// Test seams. Production uses time.Sleep and os.Stat.
	sleep    func(time.Duration)
	fileSize func(string) (int64, error)
}

// New creates a Watcher for cfg.WatchDir.
func New(ix FileIndexer, cfg *config.Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(cfg.WatchDir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", cfg.WatchDir, err)
	}

	return &Watcher{
		fsw:      fsw,
		indexer:  ix,
		cfg:      cfg,
		inflight: make(map[string]struct{}),
		sleep:    time.Sleep,
		fileSize: statSize,
	}, nil
}

func statSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Run processes events until ctx is canceled or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	log.Printf("watcher: watching %s", w.cfg.WatchDir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.dispatch(ctx, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher: %v", err)
		}
	}
}

func (w *Watcher) dispatch(ctx context.Context, event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create):
		if !w.eligible(event.Name) {
			return
		}
		go w.handleCreate(ctx, event.Name)
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		if !w.eligible(event.Name) {
			return
		}
		w.handleRemove(ctx, event.Name)
	}
}

func (w *Watcher) eligible(path string) bool {
	return w.cfg.EligibleFile(filepath.Base(path))
}

// handleCreate waits for the file to settle, verifies its size is
// stable across two samples, then indexes it. A file still growing is
// abandoned; the browser renaming its finished download fires a fresh
// create event for the final name.
func (w *Watcher) handleCreate(ctx context.Context, path string) {
	if !w.markInflight(path) {
		return
	}
	defer w.clearInflight(path)

	w.sleep(w.cfg.StabilityDelay.Std())

	first, err := w.fileSize(path)
	if err != nil {
		// Vanished during the settle window, common for temp renames.
		return
	}
	w.sleep(w.cfg.SampleInterval.Std())
	second, err := w.fileSize(path)
	if err != nil {
		return
	}
	if first != second {
		log.Printf("watcher: %s still growing (%d -> %d bytes), skipping", path, first, second)
		return
	}

	res := w.indexer.IndexFile(ctx, path)
	if res.Indexed {
		log.Printf("watcher: indexed %s", path)
		w.notify()
	}
}

func (w *Watcher) handleRemove(ctx context.Context, path string) {
	res := w.indexer.RemoveFile(ctx, path)
	if res.Removed {
		log.Printf("watcher: removed %s", path)
		w.notify()
	}
}

func (w *Watcher) notify() {
	if w.OnChange != nil {
		w.OnChange()
	}
}

// markInflight claims path for indexing. Returns false when another
// goroutine is already handling it.
func (w *Watcher) markInflight(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.inflight[path]; ok {
		return false
	}
	w.inflight[path] = struct{}{}
	return true
}

func (w *Watcher) clearInflight(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, path)
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
