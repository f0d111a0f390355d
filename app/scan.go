package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jordan52/data-horder-dupe-finder/models"
)

type ScanParams struct {
	RunIdentifier string
	DriveName     string
	BasePath      string
}

type ScanStats struct {
	FilesRecorded int64
	ErrorCount    int64
}

// RecordRun persists one scan run: a scan_runs header plus one file_entries
// row per collected entry, all inside a single transaction. A persistence
// failure rolls everything back, so a run header never exists without its
// entries. Walk errors carried on the stream are logged and counted but do
// not abort the run.
func RecordRun(ctx context.Context, db *sql.DB, params ScanParams, items <-chan models.ScanItem, logger *ScanLogger) (int64, ScanStats, error) {
	var stats ScanStats

	// Unblock the walker goroutine if we bail out mid-stream.
	defer func() {
		for range items {
		}
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO scan_runs (run_identifier, drive_name, base_path, scan_timestamp)
        VALUES (?, ?, ?, ?)
    `, params.RunIdentifier, params.DriveName, params.BasePath, storedTime(time.Now()))
	if err != nil {
		return 0, stats, fmt.Errorf("failed to insert scan run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, stats, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO file_entries (run_id, filename, full_path, relative_path, md5_hash, created_time, modified_time)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return 0, stats, fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for item := range items {
		if item.Err != nil {
			stats.ErrorCount++
			if logger != nil {
				logger.LogScanError(item.Err)
			} else {
				log.Printf("scan error: %v", item.Err)
			}
			continue
		}

		e := item.Entry
		_, err := stmt.ExecContext(ctx,
			runID, e.Filename, e.FullPath, e.RelativePath, e.MD5Hash,
			storedTime(e.CreatedTime), storedTime(e.ModifiedTime))
		if err != nil {
			return 0, stats, fmt.Errorf("failed to insert entry for %s: %w", e.FullPath, err)
		}

		stats.FilesRecorded++
		if logger != nil {
			logger.IncrementFiles()
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, stats, fmt.Errorf("failed to commit scan run: %w", err)
	}
	committed = true

	return runID, stats, nil
}

// ListRuns returns all recorded scan runs, oldest first, each with its
// entry count.
func ListRuns(db *sql.DB) ([]models.ScanRun, error) {
	rows, err := db.Query(`
        SELECT sr.run_id, sr.run_identifier, sr.drive_name, sr.base_path, sr.scan_timestamp, COUNT(f.file_id)
        FROM scan_runs sr
        LEFT JOIN file_entries f ON f.run_id = sr.run_id
        GROUP BY sr.run_id
        ORDER BY sr.run_id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ScanRun
	for rows.Next() {
		var run models.ScanRun
		var ts string
		if err := rows.Scan(&run.RunID, &run.RunIdentifier, &run.DriveName, &run.BasePath, &ts, &run.EntryCount); err != nil {
			return nil, err
		}
		run.ScanTimestamp = parseStoredTime(ts)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
