package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/veldrin/timesieve/internal/config"
	"github.com/veldrin/timesieve/internal/storage"
)

const dateLayout = "2006-01-02"

// loadConfig loads the config from the --config path, or from the default
// location (creating it on first run).
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrCreate()
}

// openStore opens the configured database, runs migrations, and returns a
// ready-to-use store and the underlying *sql.DB.
func openStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// resolveRange parses the shared --start/--end date flags into a half-open
// interval. Empty flags leave the corresponding bound open. The end date is
// inclusive, so it is advanced by one day.
func resolveRange(f rangeFlags) (time.Time, time.Time, error) {
	var start, end time.Time
	if f.Start != "" {
		t, err := time.ParseInLocation(dateLayout, f.Start, time.Local)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date %q: %w", f.Start, err)
		}
		start = t
	}
	if f.End != "" {
		t, err := time.ParseInLocation(dateLayout, f.End, time.Local)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date %q: %w", f.End, err)
		}
		end = t.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// parseStartTime parses the add command's start flag. Accepts RFC3339, a
// date with minutes, or a bare date.
func parseStartTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", dateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q", s)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatMinutes renders a minute count like "3h 25m".
func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

// formatSeconds renders a second count like "14m 32s".
func formatSeconds(s int64) string {
	if s < 60 {
		return fmt.Sprintf("%ds", s)
	}
	m := s / 60
	if m < 60 {
		return fmt.Sprintf("%dm %ds", m, s%60)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

// rangeLabel describes a half-open range for human output.
func rangeLabel(start, end time.Time) string {
	switch {
	case start.IsZero() && end.IsZero():
		return "all time"
	case start.IsZero():
		return fmt.Sprintf("until %s", end.AddDate(0, 0, -1).Format(dateLayout))
	case end.IsZero():
		return fmt.Sprintf("since %s", start.Format(dateLayout))
	default:
		return fmt.Sprintf("%s to %s", start.Format(dateLayout), end.AddDate(0, 0, -1).Format(dateLayout))
	}
}
