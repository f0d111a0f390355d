package models

import "time"

type ScanRun struct {
	RunID         int64     `db:"run_id" json:"run_id"`
	RunIdentifier string    `db:"run_identifier" json:"run_identifier"`
	DriveName     string    `db:"drive_name" json:"drive_name"`
	BasePath      string    `db:"base_path" json:"base_path"`
	ScanTimestamp time.Time `db:"scan_timestamp" json:"scan_timestamp"`
	EntryCount    int64     `json:"entry_count"`
}

type FileEntry struct {
	FileID       int64     `db:"file_id" json:"file_id"`
	RunID        int64     `db:"run_id" json:"run_id"`
	Filename     string    `db:"filename" json:"filename"`
	FullPath     string    `db:"full_path" json:"full_path"`
	RelativePath string    `db:"relative_path" json:"relative_path"`
	MD5Hash      string    `db:"md5_hash" json:"md5_hash"`
	CreatedTime  time.Time `db:"created_time" json:"created_time"`
	ModifiedTime time.Time `db:"modified_time" json:"modified_time"`
}

// ScanItem is one element of the walker's output stream: either a collected
// entry or the error that prevented one, never both.
type ScanItem struct {
	Entry *FileEntry
	Err   error
}

type FileLocation struct {
	FullPath      string    `json:"full_path"`
	RunIdentifier string    `json:"run_identifier"`
	ScanTimestamp time.Time `json:"scan_timestamp"`
}

// DuplicateGroup holds files sharing a name and content hash at two or more
// distinct paths.
type DuplicateGroup struct {
	Filename  string         `json:"filename"`
	MD5Hash   string         `json:"md5_hash"`
	Locations []FileLocation `json:"locations"`
}

type FileVersion struct {
	MD5Hash       string    `json:"md5_hash"`
	FullPath      string    `json:"full_path"`
	ModifiedTime  time.Time `json:"modified_time"`
	RunIdentifier string    `json:"run_identifier"`
	Latest        bool      `json:"latest"`
}

// ModifiedGroup holds same-named files whose content hashes differ,
// candidate edits or conflicts rather than true duplicates.
type ModifiedGroup struct {
	Filename string        `json:"filename"`
	Versions []FileVersion `json:"versions"`
}
