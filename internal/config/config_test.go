package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "~/.config/timesieve", cfg.Storage.Path)
	assert.Equal(t, "timesieve.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, "wal", cfg.Storage.SQLiteJournalMode)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8590, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Server.RequestTimeoutSecs)
	assert.Equal(t, 5, cfg.Quality.MinGapMinutes)
	assert.Equal(t, 80, cfg.Quality.SimilarityThreshold)
	assert.Equal(t, 300, cfg.Quality.MergeMaxGapSeconds)
	assert.Equal(t, 14, cfg.Analytics.HourlyPatternDays)
	assert.Equal(t, 30, cfg.Analytics.InsightWindowDays)
	assert.Equal(t, 60, cfg.Analytics.StreakWindowDays)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "timesieve.log", cfg.Logging.File)
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
storage:
  sqlite_file: "other.db"
server:
  port: 9999
quality:
  min_gap_minutes: 15
analytics:
  timezone: "UTC"
logging:
  level: "debug"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "other.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Quality.MinGapMinutes)
	assert.Equal(t, "UTC", cfg.Analytics.Timezone)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Non-overridden values remain defaults
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 80, cfg.Quality.SimilarityThreshold)
	assert.Equal(t, "~/.config/timesieve", cfg.Storage.Path)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	err := os.WriteFile(cfgPath, []byte(":::not valid yaml{{{"), 0644)
	require.NoError(t, err)

	_, err = Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadOrCreateAtWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// The file now exists and round-trips.
	reloaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLocationFallsBackToLocal(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Analytics.Timezone = "Not/AZone"
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Analytics.Timezone = "UTC"
	assert.Equal(t, time.UTC, cfg.Location())
}
