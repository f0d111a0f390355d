package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordan52/data-horder-dupe-finder/models"
)

// LocalSource walks a directory tree on the local filesystem and emits one
// ScanItem per regular file: a collected FileEntry, or the error that kept
// the file (or a whole directory listing) out of the run.
type LocalSource struct {
	BasePath     string
	ExcludePaths []string
}

func NewLocalSource(basePath string, excludePaths []string) *LocalSource {
	return &LocalSource{
		BasePath:     basePath,
		ExcludePaths: excludePaths,
	}
}

// Walk returns a single-pass stream of entries and errors. The traversal is
// a sequential depth-first descent; the channel is closed when the tree is
// exhausted. Directory listing failures and per-file stat/hash failures are
// emitted as error items and never stop the walk.
func (l *LocalSource) Walk() <-chan models.ScanItem {
	items := make(chan models.ScanItem, 1024)

	go func() {
		defer close(items)
		visited := make(map[string]bool)
		l.walkDir(l.BasePath, visited, items)
	}()

	return items
}

func (l *LocalSource) walkDir(dir string, visited map[string]bool, items chan<- models.ScanItem) {
	// Resolve the canonical identity of the directory so that symlink
	// cycles terminate: each real directory is descended into at most once.
	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		items <- models.ScanItem{Err: &ListingError{Dir: dir, Err: err}}
		return
	}
	if visited[canonical] {
		return
	}
	visited[canonical] = true

	f, err := os.Open(dir)
	if err != nil {
		items <- models.ScanItem{Err: &ListingError{Dir: dir, Err: err}}
		return
	}
	entries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		items <- models.ScanItem{Err: &ListingError{Dir: dir, Err: err}}
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if l.excluded(path) {
			continue
		}

		switch {
		case entry.IsDir():
			l.walkDir(path, visited, items)
		case entry.Type()&fs.ModeSymlink != 0:
			// Symlinked directories are followed (cycle-safe via the
			// visited set); symlinks to files are not recorded.
			info, err := os.Stat(path)
			if err == nil && info.IsDir() {
				l.walkDir(path, visited, items)
			}
		case entry.Type().IsRegular():
			items <- l.collectFile(path, entry)
		}
	}
}

func (l *LocalSource) collectFile(path string, entry fs.DirEntry) models.ScanItem {
	info, err := entry.Info()
	if err != nil {
		return models.ScanItem{Err: &StatError{Path: path, Err: err}}
	}

	hash, err := HashFile(path)
	if err != nil {
		return models.ScanItem{Err: err}
	}

	relPath, err := filepath.Rel(l.BasePath, path)
	if err != nil {
		return models.ScanItem{Err: &StatError{Path: path, Err: err}}
	}

	return models.ScanItem{Entry: &models.FileEntry{
		Filename:     entry.Name(),
		FullPath:     path,
		RelativePath: relPath,
		MD5Hash:      hash,
		CreatedTime:  createdTime(info),
		ModifiedTime: info.ModTime(),
	}}
}

func (l *LocalSource) excluded(path string) bool {
	for _, exclude := range l.ExcludePaths {
		if matched, _ := filepath.Match(exclude, path); matched {
			return true
		}
		if strings.HasPrefix(path, exclude) {
			return true
		}
	}
	return false
}
