package searcher

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropindex/internal/catalog"
	"dropindex/internal/embedder"
	"dropindex/pkg/types"
)

// serviceEmbedder adapts a local provider and counts calls.
type serviceEmbedder struct {
	local *embedder.LocalProvider
	calls atomic.Int32
}

func newServiceEmbedder(t *testing.T) *serviceEmbedder {
	t.Helper()
	local, err := embedder.NewLocalProvider(nil)
	require.NoError(t, err)
	return &serviceEmbedder{local: local}
}

func (s *serviceEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	s.calls.Add(1)
	emb, err := s.local.GenerateEmbedding(ctx, embedder.EmbeddingRequest{Text: text})
	if err != nil {
		return nil, err
	}
	return emb.Vector, nil
}

func setupSearcher(t *testing.T) (*Searcher, *catalog.Catalog, *serviceEmbedder) {
	t.Helper()
	c, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	emb := newServiceEmbedder(t)
	return New(c, emb), c, emb
}

func store(t *testing.T, c *catalog.Catalog, emb *serviceEmbedder, path, text string, createdAt time.Time) {
	t.Helper()
	vec, err := emb.EmbedText(context.Background(), text)
	require.NoError(t, err)
	_, err = c.UpsertFile(context.Background(), &catalog.FileRecord{
		Path:        path,
		Filename:    path[len("/tmp/"):],
		Extension:   ".txt",
		CreatedAt:   createdAt,
		IndexedAt:   time.Now(),
		TextSnippet: text,
		Embedding:   vec,
	})
	require.NoError(t, err)
}

func TestSearch_IdenticalTextRanksFirst(t *testing.T) {
	s, c, emb := setupSearcher(t)
	ctx := context.Background()
	now := time.Now()

	store(t, c, emb, "/tmp/taxes.txt", "2025 tax return documents", now)
	store(t, c, emb, "/tmp/recipe.txt", "chocolate cake recipe", now)
	store(t, c, emb, "/tmp/flight.txt", "boarding pass itinerary", now)

	results, err := s.Search(ctx, "2025 tax return documents", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "/tmp/taxes.txt", results[0].Path)
	assert.InDelta(t, 1.0, results[0].Score, 1e-5,
		"a query identical to a stored document's text scores 1.0")
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
	for _, r := range results {
		assert.NoError(t, r.Validate())
	}
}

func TestSearch_EmptyCatalog(t *testing.T) {
	s, _, _ := setupSearcher(t)

	results, err := s.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_DefaultTopK(t *testing.T) {
	s, c, emb := setupSearcher(t)
	now := time.Now()

	for _, p := range []string{"/tmp/a.txt", "/tmp/b.txt"} {
		store(t, c, emb, p, "content for "+p, now)
	}

	results, err := s.Search(context.Background(), "content", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_CachedUntilInvalidated(t *testing.T) {
	s, c, emb := setupSearcher(t)
	ctx := context.Background()

	store(t, c, emb, "/tmp/x.txt", "cached content", time.Now())
	before := emb.calls.Load()

	_, err := s.Search(ctx, "query one", 5)
	require.NoError(t, err)
	_, err = s.Search(ctx, "query one", 5)
	require.NoError(t, err)
	assert.Equal(t, before+1, emb.calls.Load(), "repeat query served from cache")

	s.Invalidate()
	_, err = s.Search(ctx, "query one", 5)
	require.NoError(t, err)
	assert.Equal(t, before+2, emb.calls.Load(), "invalidation forces a fresh query")
}

func TestRecent_NewestFirstWithSentinelScore(t *testing.T) {
	s, c, emb := setupSearcher(t)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	store(t, c, emb, "/tmp/monday.txt", "monday file", base)
	store(t, c, emb, "/tmp/tuesday.txt", "tuesday file", base.Add(24*time.Hour))
	store(t, c, emb, "/tmp/friday.txt", "friday file", base.Add(96*time.Hour))

	results, err := s.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "/tmp/friday.txt", results[0].Path)
	assert.Equal(t, "/tmp/tuesday.txt", results[1].Path)
	for _, r := range results {
		assert.Equal(t, types.RecencyScore, r.Score)
	}
}

func TestRecent_EmptyCatalog(t *testing.T) {
	s, _, _ := setupSearcher(t)

	results, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
