package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/veldrin/timesieve/internal/config"
	"github.com/veldrin/timesieve/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string            `json:"version"`
	DatabasePath      string            `json:"database_path"`
	DatabaseSizeBytes int64             `json:"database_size_bytes"`
	TotalActivities   int64             `json:"total_activities"`
	OldestActivity    string            `json:"oldest_activity,omitempty"`
	NewestActivity    string            `json:"newest_activity,omitempty"`
	BySource          []sourceCountJSON `json:"by_source"`
}

type sourceCountJSON struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals.Config)
	if err != nil {
		return err
	}
	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, db, cfg)
}

// executeWithStore runs status against a provided store and db (for testing).
func (c *StatusCommand) executeWithStore(store *storage.SQLiteStore, db *sql.DB, cfg *config.Config) error {
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	dbSize := databaseSize(db, dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(stats, dbPath, dbSize)
	}
	return c.printHuman(stats, dbPath, dbSize)
}

func (c *StatusCommand) printHuman(stats *storage.Stats, dbPath string, dbSize int64) error {
	fmt.Println("Timesieve Status")
	fmt.Println("================")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Activities:    %d\n", stats.TotalActivities)

	if stats.TotalActivities > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestActivity.Local().Format(dateLayout))
		fmt.Printf("Newest:        %s\n", stats.NewestActivity.Local().Format(dateLayout))
	}

	if len(stats.BySource) > 0 {
		fmt.Println()
		fmt.Println("By Source:")
		for _, s := range stats.BySource {
			fmt.Printf("  %-12s %d\n", s.Source, s.Count)
		}
	}

	return nil
}

func (c *StatusCommand) printJSON(stats *storage.Stats, dbPath string, dbSize int64) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		TotalActivities:   stats.TotalActivities,
		BySource:          make([]sourceCountJSON, len(stats.BySource)),
	}

	if stats.TotalActivities > 0 {
		out.OldestActivity = stats.OldestActivity.UTC().Format(time.RFC3339)
		out.NewestActivity = stats.NewestActivity.UTC().Format(time.RFC3339)
	}

	for i, s := range stats.BySource {
		out.BySource[i] = sourceCountJSON{Source: string(s.Source), Count: s.Count}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// databaseSize returns the database file size in bytes. For on-disk
// databases it uses os.Stat; in-memory databases fall back to
// page_count * page_size.
func databaseSize(db *sql.DB, dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
