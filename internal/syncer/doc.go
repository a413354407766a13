// Package syncer reconciles the catalog with the watched directory on
// startup and on demand: collapse duplicate rows, drop records for
// files that no longer exist, and index eligible files that arrived
// while nothing was watching. A sync pass is idempotent.
package syncer
