package catalog

import "time"

// FileRecord is one row of files_index: the catalog's view of a single
// indexed file. Path is the natural key; ID is the surrogate key assigned
// on first insert and preserved across re-indexing.
type FileRecord struct {
	ID          int64
	Path        string // absolute
	Filename    string
	Extension   string // lowercased, with leading dot
	SizeBytes   int64
	CreatedAt   time.Time // file birth time, or the closest the platform offers
	IndexedAt   time.Time // last write by the indexer
	TextSnippet string
	FullText    string
	Embedding   []float32 // nil when extraction produced no text
}

// Neighbor is a similarity-search hit.
type Neighbor struct {
	ID       int64
	Score    float64
	Filename string
	Path     string
	Snippet  string
}

// Stats summarizes catalog contents for status reporting.
type Stats struct {
	TotalFiles     int
	WithEmbedding  int
	ByExtension    map[string]int
	IndexSizeMB    float64
}
