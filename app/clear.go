package app

import (
	"database/sql"
	"fmt"
)

// ClearPath deletes every scan run whose stored base_path exactly matches
// basePath, along with all its file entries. Entries go first, inside the
// same transaction, so no orphaned rows survive. Clearing a path with no
// recorded runs is a successful no-op.
func ClearPath(db *sql.DB, basePath string) (runsDeleted, entriesDeleted int64, err error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec(`
        DELETE FROM file_entries
        WHERE run_id IN (SELECT run_id FROM scan_runs WHERE base_path = ?)
    `, basePath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete file entries: %w", err)
	}
	entriesDeleted, _ = res.RowsAffected()

	res, err = tx.Exec(`DELETE FROM scan_runs WHERE base_path = ?`, basePath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete scan runs: %w", err)
	}
	runsDeleted, _ = res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit clear: %w", err)
	}
	committed = true

	return runsDeleted, entriesDeleted, nil
}
