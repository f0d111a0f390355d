//go:build !linux

package app

import (
	"io/fs"
	"time"
)

func createdTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
