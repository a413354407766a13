//go:build !linux && !darwin && !windows

package indexer

import (
	"os"
	"time"
)

// birthTime falls back to the modification time on platforms without a
// creation-time syscall surface.
func birthTime(path string, info os.FileInfo) time.Time {
	return info.ModTime()
}
