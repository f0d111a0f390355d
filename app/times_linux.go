package app

import (
	"io/fs"
	"syscall"
	"time"
)

// createdTime returns the closest thing to a creation time the platform
// reports: the inode change time on Linux, mod time otherwise.
func createdTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return info.ModTime()
}
