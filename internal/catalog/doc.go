// Package catalog provides SQLite-based persistence for indexed files.
//
// The catalog is a single table, files_index, holding one row per absolute
// path: file metadata, a preview snippet, the extracted text, and a
// 384-dimension embedding blob (NULL when no text was extracted).
//
// # Operations
//
//   - Open: idempotent schema creation via versioned migrations
//   - UpsertFile: insert-or-update keyed by path, preserving the row id
//   - DeleteByPath: no-op when the row is absent
//   - ListPaths / Dedupe: reconciliation support for the sync engine
//   - QueryRecent / QueryAllWithEmbedding: read paths for the search layer
//   - FindCosineNeighbors: top-k cosine similarity
//
// # Build Tags
//
// Two build configurations select the similarity strategy:
//
// CGO build (sqlite_vec tag) uses github.com/mattn/go-sqlite3 with the
// sqlite-vec extension; similarity is computed inside SQLite:
//
//	CGO_ENABLED=1 go build -tags "sqlite_vec"
//
// Pure Go build uses modernc.org/sqlite; all embeddings are fetched and
// scored in Go:
//
//	CGO_ENABLED=0 go build -tags "purego"
//
// Both strategies produce identical ranked orderings for the same inputs,
// with equal scores breaking ties by ascending id.
package catalog
