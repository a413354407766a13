package catalog

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"
	"sort"
)

// FindCosineNeighbors returns the topK records with embeddings, ordered by
// descending cosine similarity to queryVector. Ties break by ascending id.
// Both execution strategies produce the same ranked ordering up to
// floating-point tolerance.
func (c *Catalog) FindCosineNeighbors(ctx context.Context, queryVector []float32, topK int) ([]Neighbor, error) {
	if topK <= 0 || len(queryVector) == 0 {
		return []Neighbor{}, nil
	}
	// Prefer in-store scoring when sqlite-vec is compiled in.
	if VectorExtensionAvailable {
		return c.neighborsInStore(ctx, queryVector, topK)
	}
	return c.neighborsFallback(ctx, queryVector, topK)
}

// neighborsInStore scores with sqlite-vec's vec_distance_cosine at the
// database layer. Distance is converted to similarity (1 - distance) so
// both strategies report the same quantity.
func (c *Catalog) neighborsInStore(ctx context.Context, queryVector []float32, topK int) ([]Neighbor, error) {
	blob := serializeVector(queryVector)
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, filename, path, text_snippet,
		       1.0 - vec_distance_cosine(embedding, ?) AS score
		FROM files_index
		WHERE embedding IS NOT NULL
		ORDER BY score DESC, id ASC
		LIMIT ?
	`, blob, topK)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := make([]Neighbor, 0, topK)
	for rows.Next() {
		var n Neighbor
		if err := rows.Scan(&n.ID, &n.Filename, &n.Path, &n.Snippet, &n.Score); err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// neighborsFallback fetches every embedding and scores in Go. O(N) per
// query with full deserialization; acceptable for a local personal-file
// index.
func (c *Catalog) neighborsFallback(ctx context.Context, queryVector []float32, topK int) ([]Neighbor, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, filename, path, text_snippet, embedding
		FROM files_index
		WHERE embedding IS NOT NULL
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	candidates, err := scoreCandidates(rows, queryVector)
	if err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})

	if topK > len(candidates) {
		topK = len(candidates)
	}
	return candidates[:topK], nil
}

// scoreCandidates computes cosine similarity for every candidate row.
// Rows whose stored dimension doesn't match the query are skipped.
func scoreCandidates(rows *sql.Rows, queryVector []float32) ([]Neighbor, error) {
	candidates := make([]Neighbor, 0, 256)
	for rows.Next() {
		var n Neighbor
		var blob []byte
		if err := rows.Scan(&n.ID, &n.Filename, &n.Path, &n.Snippet, &blob); err != nil {
			return nil, err
		}
		vector := deserializeVector(blob)
		if len(vector) != len(queryVector) {
			continue
		}
		n.Score = cosineSimilarity(queryVector, vector)
		candidates = append(candidates, n)
	}
	return candidates, rows.Err()
}

// serializeVector converts a float32 slice to a byte blob (little-endian).
// The layout matches what sqlite-vec expects, so both build modes share
// the stored format.
func serializeVector(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// deserializeVector converts a byte blob back to a float32 slice
func deserializeVector(blob []byte) []float32 {
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		vector[i] = math.Float32frombits(bits)
	}
	return vector
}

// cosineSimilarity computes the cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineSimilarity is an exported helper for testing and for similarity
// graphing over QueryAllWithEmbedding results.
func CosineSimilarity(a, b []float32) float64 {
	return cosineSimilarity(a, b)
}
