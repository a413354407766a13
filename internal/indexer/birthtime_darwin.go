//go:build darwin

package indexer

import (
	"os"
	"syscall"
	"time"
)

// birthTime returns the file's true creation time, which macOS exposes
// through Birthtimespec.
func birthTime(path string, info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	}
	return info.ModTime()
}
