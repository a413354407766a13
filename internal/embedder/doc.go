// Package embedder generates vector embeddings for extracted file text.
//
// Every provider produces 384-dimension vectors (EmbeddingDim). The
// hosted providers (Jina AI, OpenAI) pass a dimensions parameter to pin
// the output size; the local provider derives a deterministic vector
// from the content hash so the system works fully offline.
//
// # Basic Usage
//
//	svc := embedder.NewService()
//	defer svc.Close()
//
//	vec, err := svc.EmbedText(ctx, extractedText)
//	if errors.Is(err, embedder.ErrModelUnavailable) {
//	    // Store the record without an embedding; retry on the next pass.
//	}
//
// The Service builds its provider lazily on first use, so opening the
// index never blocks on the network. Construction failures are not
// latched: a provider that comes up later is picked up on the next call.
//
// # Provider Selection
//
// Selection is driven by environment variables:
//
//  1. If DROPINDEX_EMBEDDING_PROVIDER is set → use the named provider
//  2. Else if JINA_API_KEY is set → use Jina AI
//  3. Else if OPENAI_API_KEY is set → use OpenAI
//  4. Else → fallback to the local provider (offline mode)
//
// # Caching
//
// Embeddings are cached in-memory by content SHA-256, so re-indexing an
// unchanged file never repeats an API call:
//
//	cache := embedder.NewCache(10000) // cache 10k embeddings
//
// # Truncation
//
// Text longer than MaxEmbedChars runes is truncated before embedding.
// The catalog stores the same truncated text, keeping the searchable
// content and the vector in agreement.
package embedder
