package extract

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
)

// Strategy extracts plain text from one file format. Implementations
// return the extracted text, or an error when the file can't be parsed.
// An empty string with a nil error means the file genuinely has no text.
type Strategy interface {
	// Extract reads the file at path and returns its text content.
	Extract(path string) (string, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(path string) (string, error)

// Extract implements Strategy.
func (f StrategyFunc) Extract(path string) (string, error) {
	return f(path)
}

// Registry maps file extensions to extraction strategies.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy // extension (with dot, lowercase) → strategy
}

// NewRegistry returns a registry with every built-in strategy registered:
// plain text, PDF, DOCX, Jupyter notebooks, and OCR for images.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}

	plain := StrategyFunc(extractPlain)
	for _, ext := range []string{".txt", ".md", ".py", ".csv"} {
		r.Register(ext, plain)
	}
	r.Register(".pdf", StrategyFunc(extractPDF))
	r.Register(".docx", StrategyFunc(extractDocx))
	r.Register(".ipynb", StrategyFunc(extractNotebook))

	ocr := StrategyFunc(extractImage)
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		r.Register(ext, ocr)
	}
	return r
}

// Register binds a strategy to an extension. The extension is normalized
// to lowercase with a leading dot.
func (r *Registry) Register(ext string, s Strategy) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[ext] = s
}

// Lookup returns the strategy for a file path, or nil when the extension
// has no registered strategy.
func (r *Registry) Lookup(path string) Strategy {
	ext := strings.ToLower(filepath.Ext(path))
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.strategies[ext]
}

// Extensions returns the set of all registered extensions.
func (r *Registry) Extensions() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make(map[string]bool, len(r.strategies))
	for ext := range r.strategies {
		exts[ext] = true
	}
	return exts
}

// Extract runs the strategy for path's extension and contains every
// failure. The second return reports whether text was obtained: an
// unregistered extension, a parse error, or an empty result all yield
// ("", false). A failed extraction is logged, never propagated, so one
// unreadable file can't take down a batch.
func (r *Registry) Extract(path string) (string, bool) {
	strategy := r.Lookup(path)
	if strategy == nil {
		return "", false
	}
	text, err := strategy.Extract(path)
	if err != nil {
		log.Printf("extract: %s: %v", path, err)
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
