package app

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

// setupTestDB creates a temporary SQLite database with the full schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenStore(dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// insertTestRun inserts a scan run header and returns its run_id
func insertTestRun(t *testing.T, db *sql.DB, runIdentifier, driveName, basePath string) int64 {
	t.Helper()

	res, err := db.Exec(`
		INSERT INTO scan_runs (run_identifier, drive_name, base_path, scan_timestamp)
		VALUES (?, ?, ?, ?)
	`, runIdentifier, driveName, basePath, storedTime(time.Now()))
	if err != nil {
		t.Fatalf("failed to insert test run: %v", err)
	}

	id, _ := res.LastInsertId()
	return id
}

// insertTestEntry inserts a file entry owned by runID
func insertTestEntry(t *testing.T, db *sql.DB, runID int64, filename, fullPath, relPath, hash string, modTime time.Time) int64 {
	t.Helper()

	res, err := db.Exec(`
		INSERT INTO file_entries (run_id, filename, full_path, relative_path, md5_hash, created_time, modified_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, filename, fullPath, relPath, hash, storedTime(modTime), storedTime(modTime))
	if err != nil {
		t.Fatalf("failed to insert test entry: %v", err)
	}

	id, _ := res.LastInsertId()
	return id
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}
