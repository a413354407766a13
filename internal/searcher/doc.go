// Package searcher answers "find files about X" and "what arrived
// recently" over the catalog. Semantic search embeds the query and
// ranks stored vectors by cosine similarity; recency listing orders by
// file creation time.
package searcher
