//go:build !windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getAccessTime gets the last access time from FileInfo (Unix)
func getAccessTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
}

// getChangeTime gets the creation time from FileInfo (Unix).
// Unix does not expose birth time portably, so ctime is the closest
// available signal.
func getChangeTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
}
