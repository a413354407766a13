//go:build purego || !sqlite_vec
// +build purego !sqlite_vec

package catalog

// This file is compiled when building without CGO or with the purego tag.
// Cosine similarity is computed in Go by fetching all embeddings, which is
// fine for a personal-file-sized catalog.
//
// Build command:
//   CGO_ENABLED=0 go build -tags "purego" ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite"

	// VectorExtensionAvailable indicates if in-store similarity is available
	VectorExtensionAvailable = false

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
