package searcher

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"dropindex/internal/catalog"
	"dropindex/pkg/types"
)

// DefaultTopK is used when the caller doesn't specify a result count.
const DefaultTopK = 10

// Store is the catalog surface search reads from.
type Store interface {
	FindCosineNeighbors(ctx context.Context, queryVector []float32, topK int) ([]catalog.Neighbor, error)
	QueryRecent(ctx context.Context, limit int) ([]catalog.FileRecord, error)
}

// Embedder turns the query string into a vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Searcher answers semantic queries and recency listings over the
// catalog. Query results are cached briefly; the cache is flushed
// whenever the index changes.
type Searcher struct {
	store    Store
	embedder Embedder
	cache    *expirable.LRU[string, []types.SearchResult]
}

// New creates a Searcher with a short-lived query cache.
func New(store Store, emb Embedder) *Searcher {
	return &Searcher{
		store:    store,
		embedder: emb,
		cache:    expirable.NewLRU[string, []types.SearchResult](256, nil, 30*time.Second),
	}
}

// Search embeds query and returns up to topK results ordered by
// descending cosine similarity. topK <= 0 means DefaultTopK. An empty
// catalog yields an empty list, not an error.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]types.SearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	key := fmt.Sprintf("%d:%s", topK, query)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	neighbors, err := s.store.FindCosineNeighbors(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}

	results := make([]types.SearchResult, 0, len(neighbors))
	for _, n := range neighbors {
		results = append(results, types.SearchResult{
			Score:    n.Score,
			Filename: n.Filename,
			Path:     n.Path,
			Snippet:  n.Snippet,
		})
	}

	s.cache.Add(key, results)
	return results, nil
}

// Recent returns the newest files by creation time. Results carry the
// sentinel RecencyScore so they render through the same result shape
// as similarity hits.
func (s *Searcher) Recent(ctx context.Context, limit int) ([]types.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultTopK
	}

	recs, err := s.store.QueryRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent query: %w", err)
	}

	results := make([]types.SearchResult, 0, len(recs))
	for _, rec := range recs {
		results = append(results, types.SearchResult{
			Score:    types.RecencyScore,
			Filename: rec.Filename,
			Path:     rec.Path,
			Snippet:  rec.TextSnippet,
		})
	}
	return results, nil
}

// Invalidate flushes the query cache. Wired to the watcher's change
// callback so searches never serve results older than the last index
// update.
func (s *Searcher) Invalidate() {
	s.cache.Purge()
}
