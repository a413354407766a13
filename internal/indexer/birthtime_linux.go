//go:build linux

package indexer

import (
	"os"
	"syscall"
	"time"
)

// birthTime approximates file creation time. Linux's stat does not
// expose btime through os.FileInfo, so the inode change time is the
// closest available stand-in; for freshly downloaded files it matches
// the arrival time, which is what recency ordering cares about.
func birthTime(path string, info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}
