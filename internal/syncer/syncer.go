package syncer

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"dropindex/internal/config"
	"dropindex/internal/indexer"
)

// Catalog is the reconciliation surface the syncer reads from.
type Catalog interface {
	ListPaths(ctx context.Context) (map[string]struct{}, error)
	Dedupe(ctx context.Context) error
}

// FileIndexer indexes and removes individual files.
type FileIndexer interface {
	IndexFile(ctx context.Context, path string) indexer.Result
	RemoveFile(ctx context.Context, path string) indexer.Result
}

// Stats summarizes one sync pass.
type Stats struct {
	Removed    int
	Backfilled int
	Failed     int
}

// Syncer reconciles the catalog with the watched directory: duplicates
// collapse, records for vanished files go away, and files that arrived
// while the watcher wasn't running get indexed.
type Syncer struct {
	catalog Catalog
	indexer FileIndexer
	cfg     *config.Config
}

// New creates a Syncer.
func New(cat Catalog, ix FileIndexer, cfg *config.Config) *Syncer {
	return &Syncer{catalog: cat, indexer: ix, cfg: cfg}
}

// Sync runs one full reconciliation pass over dir. The order matters:
// dedupe first so path listing sees one row per path, then removals,
// then backfill. A missing directory is a no-op, not an error. Per-file
// failures are counted, never propagated; only catalog-level failures
// abort the pass.
func (s *Syncer) Sync(ctx context.Context, dir string) (Stats, error) {
	var stats Stats

	if err := s.catalog.Dedupe(ctx); err != nil {
		return stats, err
	}

	indexed, err := s.catalog.ListPaths(ctx)
	if err != nil {
		return stats, err
	}

	// Remove records whose file no longer exists.
	for path := range indexed {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			res := s.indexer.RemoveFile(ctx, path)
			if res.Err != nil {
				stats.Failed++
				continue
			}
			stats.Removed++
			log.Printf("sync: removed stale record %s", path)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, err
	}

	// Backfill eligible files the catalog doesn't know about yet.
	var backfilled, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.SyncWorkers)

	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}
		if !s.cfg.EligibleFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, ok := indexed[path]; ok {
			continue
		}

		g.Go(func() error {
			res := s.indexer.IndexFile(gctx, path)
			switch {
			case res.Indexed:
				backfilled.Add(1)
				log.Printf("sync: backfilled %s", path)
			case res.Skipped:
				// File vanished between listing and indexing.
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	stats.Backfilled = int(backfilled.Load())
	stats.Failed += int(failed.Load())
	return stats, nil
}
