package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/veldrin/timesieve/internal/storage"
)

// openTestStore creates a migrated in-memory store for command tests.
func openTestStore(t *testing.T) (*storage.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, db
}

// seedManual inserts a closed manual entry and returns its generated ID.
func seedManual(t *testing.T, store storage.Store, start time.Time, minutes int, title string) string {
	t.Helper()
	end := start.Add(time.Duration(minutes) * time.Minute)
	dur := int64(minutes) * 60
	a := storage.Activity{
		SourceType:      storage.SourceManual,
		Title:           title,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: &dur,
	}
	require.NoError(t, store.AddActivity(context.Background(), &a))
	return a.ID
}

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}
