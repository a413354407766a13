package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page extraction is capped so a scanned thousand-page document doesn't
// dominate indexing time. Ten pages is plenty for a semantic snippet.
const maxPDFPages = 10

// extractPDF pulls plain text from the first pages of a PDF. Pages that
// fail to decode are skipped; the document fails only when it can't be
// opened at all.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	pages := reader.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
