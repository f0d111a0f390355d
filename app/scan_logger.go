package app

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ScanLogger handles logging to both stdout and a compressed file
type ScanLogger struct {
	file          *os.File
	gzWriter      *gzip.Writer
	logger        *log.Logger
	runIdentifier string
	startTime     time.Time
	logPath       string
	mu            sync.Mutex

	// Counters for statistics
	filesRecorded int64
	listingErrors int64
	readErrors    int64
	statErrors    int64
	otherErrors   int64
}

// NewScanLogger creates a new logger that writes to both stdout and a gzipped log file
// The log file is created in the same directory as the database
func NewScanLogger(dbPath, runIdentifier string, retentionDays int) (*ScanLogger, error) {
	dbDir := filepath.Dir(dbPath)

	// Create log filename with timestamp
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := fmt.Sprintf("%s_scan_%s.log.gz", runIdentifier, timestamp)
	logPath := filepath.Join(dbDir, logFileName)

	// Ensure directory exists
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Clean up old logs before starting new scan
	if retentionDays > 0 {
		cleanupOldLogs(dbDir, retentionDays)
	}

	// Open log file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	// Create gzip writer
	gzWriter := gzip.NewWriter(file)

	// Create multi-writer for both stdout and gzipped file
	multiWriter := io.MultiWriter(os.Stdout, gzWriter)
	logger := log.New(multiWriter, "", log.Ldate|log.Ltime)

	sl := &ScanLogger{
		file:          file,
		gzWriter:      gzWriter,
		logger:        logger,
		runIdentifier: runIdentifier,
		startTime:     time.Now(),
		logPath:       logPath,
	}

	sl.Log("%s", strings.Repeat("=", 80))
	sl.Log("SCAN LOG STARTED")
	sl.Log("Run identifier: %s", runIdentifier)
	sl.Log("Database path: %s", dbPath)
	sl.Log("Log file: %s", logPath)
	sl.Log("Log retention: %d days", retentionDays)
	sl.Log("Start time: %s", sl.startTime.Format(time.RFC3339))
	sl.Log("%s", strings.Repeat("=", 80))

	return sl, nil
}

// cleanupOldLogs removes scan log files older than retentionDays
func cleanupOldLogs(logDir string, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	matches, err := filepath.Glob(filepath.Join(logDir, "*_scan_*.log.gz"))
	if err != nil {
		log.Printf("Warning: failed to find old logs: %v", err)
		return
	}

	for _, logFile := range matches {
		info, err := os.Stat(logFile)
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(logFile); err != nil {
				log.Printf("Warning: failed to remove old log %s: %v", logFile, err)
			}
		}
	}
}

// Log writes a formatted message to the log
func (sl *ScanLogger) Log(format string, args ...interface{}) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.logger.Printf(format, args...)
}

// LogSection writes a section header
func (sl *ScanLogger) LogSection(title string) {
	sl.Log("")
	sl.Log("----- %s -----", title)
}

// LogConfig logs the scan configuration
func (sl *ScanLogger) LogConfig(params ScanParams, excludePaths []string) {
	sl.LogSection("SCAN CONFIGURATION")
	sl.Log("Drive name: %s", params.DriveName)
	sl.Log("Base path: %s", params.BasePath)
	sl.Log("Exclude patterns (%d):", len(excludePaths))
	for i, p := range excludePaths {
		sl.Log("  [%d] %s", i+1, p)
	}
}

// LogScanError classifies and logs an error emitted by the walker
func (sl *ScanLogger) LogScanError(err error) {
	var listingErr *ListingError
	var readErr *ReadError
	var statErr *StatError

	switch {
	case errors.As(err, &listingErr):
		atomic.AddInt64(&sl.listingErrors, 1)
		sl.Log("ERROR [listing]: %s - %v", listingErr.Dir, listingErr.Err)
	case errors.As(err, &readErr):
		atomic.AddInt64(&sl.readErrors, 1)
		sl.Log("ERROR [read]: %s - %v", readErr.Path, readErr.Err)
	case errors.As(err, &statErr):
		atomic.AddInt64(&sl.statErrors, 1)
		sl.Log("ERROR [stat]: %s - %v", statErr.Path, statErr.Err)
	default:
		atomic.AddInt64(&sl.otherErrors, 1)
		sl.Log("ERROR: %v", err)
	}
}

// IncrementFiles increments the recorded-file counter
func (sl *ScanLogger) IncrementFiles() {
	atomic.AddInt64(&sl.filesRecorded, 1)
}

// LogRunRecorded logs the persisted run id
func (sl *ScanLogger) LogRunRecorded(runID int64) {
	sl.Log("RUN RECORDED: run_id=%d", runID)
}

// LogSummary logs the final summary
func (sl *ScanLogger) LogSummary() {
	duration := time.Since(sl.startTime)

	sl.LogSection("SCAN SUMMARY")
	sl.Log("Total duration: %v", duration)
	sl.Log("Files recorded: %d", atomic.LoadInt64(&sl.filesRecorded))
	sl.Log("Listing errors: %d", atomic.LoadInt64(&sl.listingErrors))
	sl.Log("Read errors: %d", atomic.LoadInt64(&sl.readErrors))
	sl.Log("Stat errors: %d", atomic.LoadInt64(&sl.statErrors))
	sl.Log("Other errors: %d", atomic.LoadInt64(&sl.otherErrors))

	filesRecorded := atomic.LoadInt64(&sl.filesRecorded)
	if filesRecorded > 0 && duration.Seconds() > 0 {
		filesPerSec := float64(filesRecorded) / duration.Seconds()
		sl.Log("Scan rate: %.0f files/second", filesPerSec)
	}

	sl.Log("")
	sl.Log("%s", strings.Repeat("=", 80))
	sl.Log("SCAN COMPLETED: %s", time.Now().Format(time.RFC3339))
	sl.Log("%s", strings.Repeat("=", 80))
}

// ErrorCount returns the total number of errors seen so far
func (sl *ScanLogger) ErrorCount() int64 {
	return atomic.LoadInt64(&sl.listingErrors) +
		atomic.LoadInt64(&sl.readErrors) +
		atomic.LoadInt64(&sl.statErrors) +
		atomic.LoadInt64(&sl.otherErrors)
}

// GetLogPath returns the path to the current log file
func (sl *ScanLogger) GetLogPath() string {
	return sl.logPath
}

// Close closes the gzip writer and log file
func (sl *ScanLogger) Close() error {
	sl.LogSummary()

	// Flush and close gzip writer first
	if sl.gzWriter != nil {
		if err := sl.gzWriter.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer: %w", err)
		}
	}

	// Then close the file
	if sl.file != nil {
		return sl.file.Close()
	}
	return nil
}
