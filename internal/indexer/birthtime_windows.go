//go:build windows

package indexer

import (
	"os"
	"syscall"
	"time"
)

// birthTime returns the file's creation time from the Win32 attribute
// data.
func birthTime(path string, info os.FileInfo) time.Time {
	if attr, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, attr.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
