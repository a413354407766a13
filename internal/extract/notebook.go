package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

type notebookDoc struct {
	Cells []notebookCell `json:"cells"`
}

// extractNotebook joins the source of markdown and code cells in a
// Jupyter notebook. Output cells are ignored; they are mostly noise for
// similarity search.
func extractNotebook(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read notebook %s: %w", path, err)
	}

	var nb notebookDoc
	if err := json.Unmarshal(data, &nb); err != nil {
		return "", fmt.Errorf("parse notebook %s: %w", path, err)
	}

	parts := make([]string, 0, len(nb.Cells))
	for _, cell := range nb.Cells {
		if cell.CellType != "markdown" && cell.CellType != "code" {
			continue
		}
		parts = append(parts, cellSource(cell.Source))
	}
	return strings.Join(parts, "\n"), nil
}

// cellSource handles the two encodings the notebook format allows: a
// list of line strings or a single string.
func cellSource(raw json.RawMessage) string {
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
