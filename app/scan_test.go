package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jordan52/data-horder-dupe-finder/models"
)

func itemStream(items ...models.ScanItem) <-chan models.ScanItem {
	ch := make(chan models.ScanItem, len(items))
	for _, item := range items {
		ch <- item
	}
	close(ch)
	return ch
}

func testEntry(name, fullPath string) *models.FileEntry {
	now := time.Now()
	return &models.FileEntry{
		Filename:     name,
		FullPath:     fullPath,
		RelativePath: name,
		MD5Hash:      "d41d8cd98f00b204e9800998ecf8427e",
		CreatedTime:  now,
		ModifiedTime: now,
	}
}

func TestRecordRun(t *testing.T) {
	db := setupTestDB(t)
	params := ScanParams{RunIdentifier: "nightly", DriveName: "tank", BasePath: "/data"}

	t.Run("run header and entries persisted", func(t *testing.T) {
		items := itemStream(
			models.ScanItem{Entry: testEntry("a.txt", "/data/a.txt")},
			models.ScanItem{Entry: testEntry("b.txt", "/data/b.txt")},
		)

		runID, stats, err := RecordRun(context.Background(), db, params, items, nil)
		if err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
		if runID <= 0 {
			t.Errorf("expected positive run id, got %d", runID)
		}
		if stats.FilesRecorded != 2 {
			t.Errorf("expected 2 files recorded, got %d", stats.FilesRecorded)
		}

		var identifier, drive, base string
		err = db.QueryRow(`SELECT run_identifier, drive_name, base_path FROM scan_runs WHERE run_id = ?`, runID).
			Scan(&identifier, &drive, &base)
		if err != nil {
			t.Fatalf("failed to read run header: %v", err)
		}
		if identifier != "nightly" || drive != "tank" || base != "/data" {
			t.Errorf("unexpected run header: %s %s %s", identifier, drive, base)
		}

		var count int
		db.QueryRow(`SELECT COUNT(*) FROM file_entries WHERE run_id = ?`, runID).Scan(&count)
		if count != 2 {
			t.Errorf("expected 2 entries for run, got %d", count)
		}
	})

	t.Run("stream errors counted but run succeeds", func(t *testing.T) {
		items := itemStream(
			models.ScanItem{Entry: testEntry("ok.txt", "/data/ok.txt")},
			models.ScanItem{Err: &ReadError{Path: "/data/bad.txt", Err: os.ErrPermission}},
			models.ScanItem{Err: &ListingError{Dir: "/data/locked", Err: os.ErrPermission}},
		)

		runID, stats, err := RecordRun(context.Background(), db, params, items, nil)
		if err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
		if stats.FilesRecorded != 1 {
			t.Errorf("expected 1 file recorded, got %d", stats.FilesRecorded)
		}
		if stats.ErrorCount != 2 {
			t.Errorf("expected 2 errors counted, got %d", stats.ErrorCount)
		}

		var count int
		db.QueryRow(`SELECT COUNT(*) FROM file_entries WHERE run_id = ?`, runID).Scan(&count)
		if count != 1 {
			t.Errorf("expected 1 entry for run, got %d", count)
		}
	})

	t.Run("runs are additive", func(t *testing.T) {
		before := countRows(t, db, "scan_runs")

		first, _, err := RecordRun(context.Background(), db, params,
			itemStream(models.ScanItem{Entry: testEntry("same.txt", "/data/same.txt")}), nil)
		if err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		second, _, err := RecordRun(context.Background(), db, params,
			itemStream(models.ScanItem{Entry: testEntry("same.txt", "/data/same.txt")}), nil)
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		if first == second {
			t.Error("expected distinct run ids")
		}
		if got := countRows(t, db, "scan_runs"); got != before+2 {
			t.Errorf("expected %d runs, got %d", before+2, got)
		}

		var count int
		db.QueryRow(`SELECT COUNT(*) FROM file_entries WHERE full_path = '/data/same.txt'`).Scan(&count)
		if count < 2 {
			t.Errorf("expected both runs to keep their own entry, got %d", count)
		}
	})

	t.Run("cancelled context fails the whole run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		runsBefore := countRows(t, db, "scan_runs")
		entriesBefore := countRows(t, db, "file_entries")

		_, _, err := RecordRun(ctx, db, params,
			itemStream(models.ScanItem{Entry: testEntry("x.txt", "/data/x.txt")}), nil)
		if err == nil {
			t.Fatal("expected error from cancelled context")
		}

		if got := countRows(t, db, "scan_runs"); got != runsBefore {
			t.Errorf("aborted run must not leave a header: %d -> %d", runsBefore, got)
		}
		if got := countRows(t, db, "file_entries"); got != entriesBefore {
			t.Errorf("aborted run must not leave entries: %d -> %d", entriesBefore, got)
		}
	})
}

func TestScanEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	makeTree(t, tmpDir, map[string]string{
		"a.txt":          "alpha",
		"sub/b.txt":      "beta",
		"sub/deep/c.txt": "gamma",
	})

	db := setupTestDB(t)
	source := NewLocalSource(tmpDir, nil)
	params := ScanParams{RunIdentifier: "e2e", DriveName: "local", BasePath: tmpDir}

	runID, stats, err := RecordRun(context.Background(), db, params, source.Walk(), nil)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if stats.FilesRecorded != 3 || stats.ErrorCount != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	rows, err := db.Query(`SELECT full_path, relative_path FROM file_entries WHERE run_id = ?`, runID)
	if err != nil {
		t.Fatalf("failed to query entries: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fullPath, relPath string
		if err := rows.Scan(&fullPath, &relPath); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if filepath.Join(tmpDir, relPath) != fullPath {
			t.Errorf("relative path %s does not resolve to %s", relPath, fullPath)
		}
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)

	runA := insertTestRun(t, db, "first", "tank", "/data")
	runB := insertTestRun(t, db, "second", "tank", "/data")
	insertTestEntry(t, db, runA, "a.txt", "/data/a.txt", "a.txt", "aa", time.Now())
	insertTestEntry(t, db, runA, "b.txt", "/data/b.txt", "b.txt", "bb", time.Now())
	insertTestEntry(t, db, runB, "a.txt", "/data/a.txt", "a.txt", "aa", time.Now())

	runs, err := ListRuns(db)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	if runs[0].RunIdentifier != "first" || runs[0].EntryCount != 2 {
		t.Errorf("unexpected first run: %+v", runs[0])
	}
	if runs[1].RunIdentifier != "second" || runs[1].EntryCount != 1 {
		t.Errorf("unexpected second run: %+v", runs[1])
	}
	if runs[0].ScanTimestamp.IsZero() {
		t.Error("expected parsed scan timestamp")
	}
}

func TestRecordRunDrainsStreamOnFailure(t *testing.T) {
	db := setupTestDB(t)

	// Unbuffered stream fed by a producer goroutine: RecordRun must drain
	// it even when it bails out early, or the producer leaks.
	items := make(chan models.ScanItem)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(items)
		for i := 0; i < 10; i++ {
			items <- models.ScanItem{Err: errors.New("noise")}
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := RecordRun(ctx, db, ScanParams{RunIdentifier: "r", DriveName: "d", BasePath: "/p"}, items, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer still blocked: stream was not drained")
	}
}
