//go:build windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getAccessTime gets the last access time from FileInfo (Windows)
func getAccessTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(0, stat.LastAccessTime.Nanoseconds())
}

// getChangeTime gets the creation time from FileInfo (Windows)
func getChangeTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(0, stat.CreationTime.Nanoseconds())
}
