package app

import "fmt"

// ListingError reports a directory whose contents could not be enumerated.
// The walk continues with sibling directories.
type ListingError struct {
	Dir string
	Err error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Dir, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// ReadError reports a file that could not be opened or read while hashing.
// The file is skipped and the scan continues.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// StatError reports a file whose metadata could not be obtained.
// The file is skipped and the scan continues.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Err)
}

func (e *StatError) Unwrap() error { return e.Err }
