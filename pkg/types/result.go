package types

// RecencyScore is the sentinel score attached to recency-ordered results.
// It marks "not a similarity score" so display layers can suppress it.
const RecencyScore = 1.0

// SearchResult is a single ranked hit from the catalog.
type SearchResult struct {
	// Score is cosine similarity in [-1, 1] for semantic search,
	// or RecencyScore for recency listings.
	Score float64

	Filename string
	Path     string // absolute path at index time
	Snippet  string // first part of the extracted text
}

// Validate checks if the search result is well formed.
func (sr *SearchResult) Validate() error {
	if sr.Path == "" {
		return ErrMissingPath
	}
	if sr.Filename == "" {
		return ErrMissingFilename
	}
	if sr.Score < -1 || sr.Score > 1 {
		return ErrInvalidScore
	}
	return nil
}
