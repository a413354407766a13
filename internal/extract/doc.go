// Package extract turns files into plain text for embedding.
//
// A Registry maps file extensions to format-specific strategies: plain
// text (.txt, .md, .py, .csv), PDF (first ten pages), DOCX, Jupyter
// notebooks, and OCR over images when tesseract is installed. The
// registry's Extract method contains every failure: unknown formats,
// corrupt files, and parse errors all report "no text" rather than an
// error, so a single bad file never interrupts indexing.
package extract
