package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jordan52/data-horder-dupe-finder/app"
	"github.com/jordan52/data-horder-dupe-finder/models"
	webapp "github.com/jordan52/data-horder-dupe-finder/web/run"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:   "dupefinder",
	Short: "Filesystem crawler and duplicate finder",
	Long: `dupefinder recursively scans a directory tree, records every file's
name, path, MD5 checksum and timestamps into a SQLite database tagged by a
named scan run, and answers cross-run questions: which files are duplicated
at different locations, and which same-named files have diverged.`,
	SilenceUsage: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan <run_identifier> <drive_name> <path>",
	Short: "Scan a directory tree and record file metadata",
	Args:  cobra.ExactArgs(3),
	RunE:  runScan,
}

var analyzeCmd = &cobra.Command{
	Use:       "analyze <find_duplicates|find_modified>",
	Short:     "Analyze recorded scans",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"find_duplicates", "find_modified"},
	RunE:      runAnalyze,
}

var clearCmd = &cobra.Command{
	Use:   "clear <base_path>",
	Short: "Delete all runs recorded for a base path (exact string match)",
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded scans and analyses as a JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "dupefinder.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database (overrides config)")
	rootCmd.AddCommand(scanCmd, analyzeCmd, clearCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*models.AppConfig, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	runIdentifier, driveName, basePath := args[0], args[1], args[2]

	if _, err := os.Stat(basePath); err != nil {
		return fmt.Errorf("path %q is not reachable: %w", basePath, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := app.OpenStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	logger, err := app.NewScanLogger(cfg.DBPath, runIdentifier, cfg.Scan.LogRetentionDays)
	if err != nil {
		return err
	}
	defer logger.Close()

	params := app.ScanParams{
		RunIdentifier: runIdentifier,
		DriveName:     driveName,
		BasePath:      basePath,
	}
	logger.LogConfig(params, cfg.Scan.ExcludePaths)

	source := app.NewLocalSource(basePath, cfg.Scan.ExcludePaths)
	runID, stats, err := app.RecordRun(cmd.Context(), db, params, source.Walk(), logger)
	if err != nil {
		return err
	}
	logger.LogRunRecorded(runID)

	// Per-file errors are reported in the scan log, not the exit code.
	fmt.Printf("Scan completed successfully. Run ID: %d (%d files recorded, %d errors)\n",
		runID, stats.FilesRecorded, stats.ErrorCount)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := app.OpenStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	switch args[0] {
	case "find_duplicates":
		groups, err := app.FindDuplicates(db)
		if err != nil {
			return err
		}
		printDuplicates(groups)
	case "find_modified":
		groups, err := app.FindModified(db)
		if err != nil {
			return err
		}
		printModified(groups)
	default:
		return fmt.Errorf("unknown analysis type %q", args[0])
	}
	return nil
}

func printDuplicates(groups []models.DuplicateGroup) {
	if len(groups) == 0 {
		fmt.Println("No duplicate files found.")
		return
	}
	for _, g := range groups {
		fmt.Printf("\nDuplicate file: %s\n", g.Filename)
		fmt.Printf("MD5 Hash: %s\n", g.MD5Hash)
		for _, loc := range g.Locations {
			fmt.Printf("  Run '%s': %s\n", loc.RunIdentifier, loc.FullPath)
		}
	}
}

func printModified(groups []models.ModifiedGroup) {
	if len(groups) == 0 {
		fmt.Println("No modified files found.")
		return
	}
	for _, g := range groups {
		fmt.Printf("\nFile: %s\n", g.Filename)
		for _, v := range g.Versions {
			latest := ""
			if v.Latest {
				latest = " (Latest version)"
			}
			fmt.Printf("  Run '%s': %s\n", v.RunIdentifier, v.FullPath)
			fmt.Printf("    Modified: %s\n", v.ModifiedTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("    MD5: %s%s\n", v.MD5Hash, latest)
		}
	}
}

func runClear(cmd *cobra.Command, args []string) error {
	basePath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := app.OpenStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, entries, err := app.ClearPath(db, basePath)
	if err != nil {
		return err
	}
	if runs == 0 {
		fmt.Printf("No scans found for path: %s\n", basePath)
		return nil
	}
	fmt.Printf("Cleared %d entries across %d runs for path: %s\n", entries, runs, basePath)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := app.OpenStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	web := webapp.NewWebApp(db, cfg)
	addr := web.GetListenAddr()
	log.Printf("Listening on %s", addr)
	return http.ListenAndServe(addr, web.GetRouter())
}
