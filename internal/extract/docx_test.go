package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx writes a minimal valid DOCX container with the given
// document.xml body.
func buildDocx(t *testing.T, dir, name, documentXML string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestExtractDocx(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Project kickoff</w:t></w:r><w:r><w:t xml:space="preserve"> agenda</w:t></w:r></w:p>
    <w:p><w:r><w:t>Budget review</w:t></w:r></w:p>
  </w:body>
</w:document>`

	dir := t.TempDir()
	path := buildDocx(t, dir, "kickoff.docx", doc)

	r := NewRegistry()
	text, ok := r.Extract(path)
	require.True(t, ok)
	assert.Contains(t, text, "Project kickoff agenda")
	assert.Contains(t, text, "Budget review")
}

func TestExtractDocx_MissingDocumentXML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = extractDocx(path)
	assert.Error(t, err)
}
