package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropindex/internal/catalog"
	"dropindex/internal/embedder"
	"dropindex/internal/extract"
)

// stubEmbedder returns a fixed vector, or an error when set.
type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func setupIndexer(t *testing.T, emb Embedder) (*Indexer, *catalog.Catalog) {
	t.Helper()
	c, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return New(c, extract.NewRegistry(), emb), c
}

func TestIndexFile_FullPipeline(t *testing.T) {
	ix, c := setupIndexer(t, &stubEmbedder{vec: []float32{0.1, 0.2, 0.3}})

	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("quarterly revenue summary"), 0o644))

	res := ix.IndexFile(context.Background(), path)
	require.NoError(t, res.Err)
	assert.True(t, res.Indexed)
	assert.True(t, res.HasText)

	rec, err := c.GetByPath(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "report.txt", rec.Filename)
	assert.Equal(t, ".txt", rec.Extension)
	assert.Equal(t, int64(25), rec.SizeBytes)
	assert.Contains(t, rec.TextSnippet, "quarterly revenue")
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, rec.Embedding)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.False(t, rec.IndexedAt.IsZero())
}

func TestIndexFile_ReindexKeepsID(t *testing.T) {
	ix, c := setupIndexer(t, &stubEmbedder{vec: []float32{1}})

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	ix.IndexFile(context.Background(), path)
	first, err := c.GetByPath(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("v2 content"), 0o644))
	ix.IndexFile(context.Background(), path)
	second, err := c.GetByPath(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Contains(t, second.TextSnippet, "v2")
}

func TestIndexFile_MissingIsSkip(t *testing.T) {
	ix, _ := setupIndexer(t, &stubEmbedder{})

	res := ix.IndexFile(context.Background(), "/tmp/does-not-exist-12345.txt")
	assert.True(t, res.Skipped)
	assert.False(t, res.Indexed)
	assert.NoError(t, res.Err)
}

func TestIndexFile_NoTextStillIndexed(t *testing.T) {
	ix, c := setupIndexer(t, &stubEmbedder{vec: []float32{1}})

	// Garbage behind a .pdf extension: extraction fails, metadata survives.
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	res := ix.IndexFile(context.Background(), path)
	require.NoError(t, res.Err)
	assert.True(t, res.Indexed)
	assert.False(t, res.HasText)

	rec, err := c.GetByPath(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, rec.TextSnippet)
	assert.Nil(t, rec.Embedding)
}

func TestIndexFile_EmbedderDownStoresText(t *testing.T) {
	ix, c := setupIndexer(t, &stubEmbedder{err: embedder.ErrModelUnavailable})

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("important notes"), 0o644))

	res := ix.IndexFile(context.Background(), path)
	assert.True(t, res.Indexed, "record stored even when the model is down")
	assert.ErrorIs(t, res.Err, embedder.ErrModelUnavailable)

	rec, err := c.GetByPath(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, rec.TextSnippet, "important notes")
	assert.Nil(t, rec.Embedding)
}

func TestIndexFile_SnippetCapped(t *testing.T) {
	ix, c := setupIndexer(t, &stubEmbedder{vec: []float32{1}})

	dir := t.TempDir()
	path := filepath.Join(dir, "huge.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", SnippetChars+5000)), 0o644))

	ix.IndexFile(context.Background(), path)
	rec, err := c.GetByPath(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, rec.TextSnippet, SnippetChars)
	assert.LessOrEqual(t, len(rec.FullText), embedder.MaxEmbedChars)
}

func TestRemoveFile(t *testing.T) {
	ix, c := setupIndexer(t, &stubEmbedder{vec: []float32{1}})

	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("short lived"), 0o644))

	ix.IndexFile(context.Background(), path)
	res := ix.RemoveFile(context.Background(), path)
	assert.True(t, res.Removed)
	require.NoError(t, res.Err)

	_, err := c.GetByPath(context.Background(), path)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	// Removing an unindexed path is a quiet no-op.
	res = ix.RemoveFile(context.Background(), filepath.Join(dir, "never.txt"))
	assert.True(t, res.Removed)
	assert.NoError(t, res.Err)
}

func TestIndexFile_DirectoryIsSkip(t *testing.T) {
	ix, _ := setupIndexer(t, &stubEmbedder{})

	res := ix.IndexFile(context.Background(), t.TempDir())
	assert.True(t, res.Skipped)
	assert.False(t, res.Indexed)
}

func TestIndexFile_StorageErrorReported(t *testing.T) {
	failing := &failingStore{}
	ix := New(failing, extract.NewRegistry(), &stubEmbedder{vec: []float32{1}})

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0o644))

	res := ix.IndexFile(context.Background(), path)
	assert.False(t, res.Indexed)
	assert.ErrorIs(t, res.Err, catalog.ErrStorage)
}

type failingStore struct{}

func (f *failingStore) UpsertFile(ctx context.Context, rec *catalog.FileRecord) (int64, error) {
	return 0, errors.Join(catalog.ErrStorage, errors.New("disk full"))
}

func (f *failingStore) DeleteByPath(ctx context.Context, path string) error {
	return errors.Join(catalog.ErrStorage, errors.New("disk full"))
}
