package app

import (
	"database/sql"
	"fmt"

	"github.com/jordan52/data-horder-dupe-finder/models"
)

// FindDuplicates groups file entries by (filename, md5_hash) across all
// runs. A group qualifies when the same name and content appear at two or
// more distinct paths. Grouping happens in SQLite so the whole entry table
// is never pulled into memory.
func FindDuplicates(db *sql.DB) ([]models.DuplicateGroup, error) {
	rows, err := db.Query(`
        SELECT f.filename, f.md5_hash, f.full_path, sr.run_identifier, sr.scan_timestamp
        FROM file_entries f
        JOIN scan_runs sr ON sr.run_id = f.run_id
        JOIN (
            SELECT filename, md5_hash
            FROM file_entries
            GROUP BY filename, md5_hash
            HAVING COUNT(DISTINCT full_path) > 1
        ) dup ON dup.filename = f.filename AND dup.md5_hash = f.md5_hash
        GROUP BY f.filename, f.md5_hash, f.full_path
        ORDER BY f.filename, f.md5_hash, f.full_path
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query duplicates: %w", err)
	}
	defer rows.Close()

	var groups []models.DuplicateGroup
	for rows.Next() {
		var filename, hash, fullPath, runIdentifier, ts string
		if err := rows.Scan(&filename, &hash, &fullPath, &runIdentifier, &ts); err != nil {
			return nil, err
		}

		loc := models.FileLocation{
			FullPath:      fullPath,
			RunIdentifier: runIdentifier,
			ScanTimestamp: parseStoredTime(ts),
		}

		n := len(groups)
		if n == 0 || groups[n-1].Filename != filename || groups[n-1].MD5Hash != hash {
			groups = append(groups, models.DuplicateGroup{Filename: filename, MD5Hash: hash})
			n++
		}
		groups[n-1].Locations = append(groups[n-1].Locations, loc)
	}
	return groups, rows.Err()
}

// FindModified groups file entries by filename alone. A group qualifies
// when the same name carries two or more distinct content hashes. Versions
// are ordered newest first; the newest is marked Latest.
func FindModified(db *sql.DB) ([]models.ModifiedGroup, error) {
	rows, err := db.Query(`
        SELECT f.filename, f.md5_hash, f.full_path, f.modified_time, sr.run_identifier
        FROM file_entries f
        JOIN scan_runs sr ON sr.run_id = f.run_id
        WHERE f.filename IN (
            SELECT filename
            FROM file_entries
            GROUP BY filename
            HAVING COUNT(DISTINCT md5_hash) > 1
        )
        GROUP BY f.filename, f.md5_hash, f.full_path
        ORDER BY f.filename, datetime(f.modified_time) DESC, f.md5_hash
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query modified files: %w", err)
	}
	defer rows.Close()

	var groups []models.ModifiedGroup
	for rows.Next() {
		var filename, hash, fullPath, modTime, runIdentifier string
		if err := rows.Scan(&filename, &hash, &fullPath, &modTime, &runIdentifier); err != nil {
			return nil, err
		}

		n := len(groups)
		if n == 0 || groups[n-1].Filename != filename {
			groups = append(groups, models.ModifiedGroup{Filename: filename})
			n++
		}
		groups[n-1].Versions = append(groups[n-1].Versions, models.FileVersion{
			MD5Hash:       hash,
			FullPath:      fullPath,
			ModifiedTime:  parseStoredTime(modTime),
			RunIdentifier: runIdentifier,
			Latest:        len(groups[n-1].Versions) == 0,
		})
	}
	return groups, rows.Err()
}
