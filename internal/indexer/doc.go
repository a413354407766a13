// Package indexer runs the per-file pipeline: stat, extract text,
// embed, upsert into the catalog. Failures are contained in a Result
// per file instead of aborting a batch, so one unreadable document
// never stops its neighbors from being indexed.
package indexer
