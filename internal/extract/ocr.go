package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

const ocrTimeout = 30 * time.Second

// extractImage runs the tesseract CLI over an image and returns the
// recognized text. A missing tesseract binary is not an error: OCR is an
// optional capability, and an image without it simply yields no text.
func extractImage(path string) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ocrTimeout)
	defer cancel()

	// "stdout" tells tesseract to print instead of writing a sidecar file.
	cmd := exec.CommandContext(ctx, "tesseract", path, "stdout")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract %s: %w: %s", path, err, stderr.String())
	}
	return out.String(), nil
}
