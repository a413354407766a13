package embedder

import (
	"context"
	"fmt"
	"sync"
)

// MaxEmbedChars caps how much extracted text is sent to the provider.
// Longer documents are truncated; the stored full text is capped to the
// same length so what's searchable matches what was embedded.
const MaxEmbedChars = 10000

// Service wraps an Embedder behind lazy construction. The underlying
// provider is built on first use under a lock, so concurrent indexing
// goroutines share one instance. A failed construction is not latched:
// the next call tries again, which matters for providers that come up
// after the indexer does.
type Service struct {
	mu       sync.Mutex
	factory  func() (Embedder, error)
	embedder Embedder
}

// NewService creates a Service that builds its provider from the
// environment on first use.
func NewService() *Service {
	return &Service{factory: NewFromEnv}
}

// NewServiceWith creates a Service with a custom factory. Used by tests
// and by callers with explicit configuration.
func NewServiceWith(factory func() (Embedder, error)) *Service {
	return &Service{factory: factory}
}

// get returns the shared embedder, constructing it if needed.
func (s *Service) get() (Embedder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embedder != nil {
		return s.embedder, nil
	}
	emb, err := s.factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	s.embedder = emb
	return emb, nil
}

// EmbedText embeds text, truncating it to MaxEmbedChars runes first.
// Returns ErrModelUnavailable (wrapped) when no provider can be built
// or the provider fails.
func (s *Service) EmbedText(ctx context.Context, text string) ([]float32, error) {
	emb, err := s.get()
	if err != nil {
		return nil, err
	}

	truncated := TruncateText(text, MaxEmbedChars)
	result, err := emb.GenerateEmbedding(ctx, EmbeddingRequest{Text: truncated})
	if err != nil {
		return nil, err
	}
	return result.Vector, nil
}

// Dimension reports the provider's vector dimension without forcing
// construction.
func (s *Service) Dimension() int {
	return EmbeddingDim
}

// Provider returns the active provider name, or the detected one when
// construction hasn't happened yet.
func (s *Service) Provider() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embedder != nil {
		return s.embedder.Provider()
	}
	return DetectProvider()
}

// Close releases the underlying provider if one was built.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embedder == nil {
		return nil
	}
	err := s.embedder.Close()
	s.embedder = nil
	return err
}

// TruncateText cuts text to at most max runes, preserving UTF-8
// boundaries.
func TruncateText(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
