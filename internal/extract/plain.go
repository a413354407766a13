package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// extractPlain reads a text file as UTF-8, dropping invalid byte
// sequences rather than failing on them.
func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
