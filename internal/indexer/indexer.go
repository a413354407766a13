package indexer

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dropindex/internal/catalog"
	"dropindex/internal/embedder"
)

// SnippetChars is how much of the extracted text is kept as the preview
// snippet returned by search.
const SnippetChars = 2000

// Store is the catalog surface the indexer writes through.
type Store interface {
	UpsertFile(ctx context.Context, rec *catalog.FileRecord) (int64, error)
	DeleteByPath(ctx context.Context, path string) error
}

// Extractor turns a file into text. The boolean reports whether any
// text was obtained; extraction failures are contained behind false.
type Extractor interface {
	Extract(path string) (string, bool)
}

// Embedder produces a vector for text.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Indexer drives the pipeline for a single file: stat, extract, embed,
// upsert. Safe for concurrent use when its dependencies are.
type Indexer struct {
	store     Store
	extractor Extractor
	embedder  Embedder
}

// New creates an Indexer.
func New(store Store, extractor Extractor, emb Embedder) *Indexer {
	return &Indexer{store: store, extractor: extractor, embedder: emb}
}

// Result reports what happened to one file. Err is informational: a
// non-nil Err with Indexed true means the record was stored but without
// an embedding.
type Result struct {
	Path    string
	Indexed bool
	Removed bool
	HasText bool
	Skipped bool
	Err     error
}

// IndexFile runs the full pipeline for path. Every failure is contained
// in the Result; the only hard error surface is the catalog write, and
// even that is reported rather than panicking a batch. A file that
// vanished between discovery and indexing is a skip, not an error.
func (ix *Indexer) IndexFile(ctx context.Context, path string) Result {
	res := Result{Path: path}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
		res.Path = abs
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			res.Skipped = true
			return res
		}
		res.Err = err
		return res
	}
	if info.IsDir() {
		res.Skipped = true
		return res
	}

	text, hasText := ix.extractor.Extract(path)
	res.HasText = hasText

	rec := &catalog.FileRecord{
		Path:      path,
		Filename:  filepath.Base(path),
		Extension: strings.ToLower(filepath.Ext(path)),
		SizeBytes: info.Size(),
		CreatedAt: birthTime(path, info),
		IndexedAt: time.Now(),
	}

	if hasText {
		rec.TextSnippet = embedder.TruncateText(text, SnippetChars)
		rec.FullText = embedder.TruncateText(text, embedder.MaxEmbedChars)

		vec, err := ix.embedder.EmbedText(ctx, text)
		switch {
		case err == nil:
			rec.Embedding = vec
		case errors.Is(err, embedder.ErrModelUnavailable):
			// Store the text now; a later sync pass backfills the vector.
			log.Printf("indexer: %s: embedding unavailable: %v", path, err)
			res.Err = err
		default:
			log.Printf("indexer: %s: embedding failed: %v", path, err)
			res.Err = err
		}
	}

	if _, err := ix.store.UpsertFile(ctx, rec); err != nil {
		log.Printf("indexer: %s: %v", path, err)
		res.Err = err
		return res
	}

	res.Indexed = true
	return res
}

// RemoveFile deletes the catalog record for path.
func (ix *Indexer) RemoveFile(ctx context.Context, path string) Result {
	res := Result{Path: path}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
		res.Path = abs
	}
	if err := ix.store.DeleteByPath(ctx, path); err != nil {
		log.Printf("indexer: remove %s: %v", path, err)
		res.Err = err
		return res
	}
	res.Removed = true
	return res
}
