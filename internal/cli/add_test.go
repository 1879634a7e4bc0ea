package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldrin/timesieve/internal/storage"
)

func TestAdd_RecordsEntry(t *testing.T) {
	store, _ := openTestStore(t)

	cmd := &AddCommand{globals: &GlobalFlags{}, version: "dev"}
	cmd.Title = "Writing report"
	cmd.Start = "2026-03-10 09:00"
	cmd.Minutes = 45
	cmd.Category = "cat-writing"

	output := captureOutput(t, func() {
		err := cmd.executeWithStore(store)
		require.NoError(t, err)
	})

	assert.Contains(t, output, `Recorded "Writing report"`)

	activities, err := store.ListActivities(context.Background(), storage.ActivityQuery{})
	require.NoError(t, err)
	require.Len(t, activities, 1)

	a := activities[0]
	assert.Equal(t, storage.SourceManual, a.SourceType)
	assert.Equal(t, "Writing report", a.Title)
	assert.Equal(t, "cat-writing", a.CategoryID)
	require.NotNil(t, a.DurationSeconds)
	assert.Equal(t, int64(45*60), *a.DurationSeconds)
	require.NotNil(t, a.EndTime)
	assert.Equal(t, 45*time.Minute, a.EndTime.Sub(a.StartTime))
}

func TestAdd_OpenEntryWithoutMinutes(t *testing.T) {
	store, _ := openTestStore(t)

	cmd := &AddCommand{globals: &GlobalFlags{}, version: "dev"}
	cmd.Title = "Deep work"

	captureOutput(t, func() {
		err := cmd.executeWithStore(store)
		require.NoError(t, err)
	})

	activities, err := store.ListActivities(context.Background(), storage.ActivityQuery{})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Nil(t, activities[0].EndTime)
	assert.Nil(t, activities[0].DurationSeconds)
}

func TestAdd_RejectsBadStartTime(t *testing.T) {
	store, _ := openTestStore(t)

	cmd := &AddCommand{globals: &GlobalFlags{}, version: "dev"}
	cmd.Title = "Broken"
	cmd.Start = "yesterday-ish"

	err := cmd.executeWithStore(store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start time")
}
