package embedder

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_Deterministic(t *testing.T) {
	l, err := NewLocalProvider(nil)
	require.NoError(t, err)
	ctx := context.Background()

	a, err := l.GenerateEmbedding(ctx, EmbeddingRequest{Text: "quarterly report"})
	require.NoError(t, err)
	b, err := l.GenerateEmbedding(ctx, EmbeddingRequest{Text: "quarterly report"})
	require.NoError(t, err)

	assert.Equal(t, a.Vector, b.Vector, "identical text must yield identical vectors")
	assert.Len(t, a.Vector, EmbeddingDim)
	assert.Equal(t, EmbeddingDim, a.Dimension)
}

func TestLocalProvider_DistinctTexts(t *testing.T) {
	l, err := NewLocalProvider(nil)
	require.NoError(t, err)
	ctx := context.Background()

	a, err := l.GenerateEmbedding(ctx, EmbeddingRequest{Text: "cats"})
	require.NoError(t, err)
	b, err := l.GenerateEmbedding(ctx, EmbeddingRequest{Text: "dogs"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Vector, b.Vector)
}

func TestLocalProvider_UnitLength(t *testing.T) {
	l, err := NewLocalProvider(nil)
	require.NoError(t, err)

	emb, err := l.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: "norm check"})
	require.NoError(t, err)

	var sum float64
	for _, v := range emb.Vector {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestLocalProvider_EmptyText(t *testing.T) {
	l, err := NewLocalProvider(nil)
	require.NoError(t, err)

	_, err = l.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: ""})
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestLocalProvider_Batch(t *testing.T) {
	l, err := NewLocalProvider(nil)
	require.NoError(t, err)

	resp, err := l.GenerateBatch(context.Background(), BatchEmbeddingRequest{
		Texts: []string{"one", "two", "three"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Embeddings, 3)
	assert.Equal(t, ProviderLocal, resp.Provider)
	for _, emb := range resp.Embeddings {
		assert.Len(t, emb.Vector, EmbeddingDim)
	}
}

func TestCache_GetReturnsCopy(t *testing.T) {
	cache := NewCache(10)
	original := &Embedding{
		Vector:    []float32{1, 2, 3},
		Dimension: 3,
		Provider:  ProviderLocal,
		Hash:      "h",
	}
	cache.Set("h", original)

	got, ok := cache.Get("h")
	require.True(t, ok)
	got.Vector[0] = 99

	again, ok := cache.Get("h")
	require.True(t, ok)
	assert.Equal(t, float32(1), again.Vector[0], "cache must not see caller mutations")
}

func TestCache_Eviction(t *testing.T) {
	cache := NewCache(2)
	cache.Set("a", &Embedding{Hash: "a"})
	cache.Set("b", &Embedding{Hash: "b"})
	cache.Set("c", &Embedding{Hash: "c"})

	assert.Equal(t, 2, cache.Size())
	_, ok := cache.Get("a")
	assert.False(t, ok, "oldest entry evicted at capacity")
}

func TestComputeHash(t *testing.T) {
	h1 := ComputeHash("same")
	h2 := ComputeHash("same")
	h3 := ComputeHash("different")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestValidateBatchRequest(t *testing.T) {
	assert.ErrorIs(t, ValidateBatchRequest(BatchEmbeddingRequest{}), ErrInvalidInput)
	assert.ErrorIs(t, ValidateBatchRequest(BatchEmbeddingRequest{Texts: []string{"ok", ""}}), ErrInvalidInput)
	assert.NoError(t, ValidateBatchRequest(BatchEmbeddingRequest{Texts: []string{"ok"}}))
}

func TestNormalizeVector(t *testing.T) {
	v := NormalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)

	zero := NormalizeVector([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", TruncateText("abc", 10))
	assert.Equal(t, "ab", TruncateText("abcdef", 2))
	assert.Equal(t, "", TruncateText("abc", 0))

	// Rune-safe: multibyte characters are never split.
	long := strings.Repeat("é", 20)
	got := TruncateText(long, 5)
	assert.Equal(t, strings.Repeat("é", 5), got)
}
