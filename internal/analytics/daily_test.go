package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldrin/timesieve/internal/storage"
)

var testCategories = []storage.Category{
	{ID: "cat-work", Name: "Work"},
	{ID: "cat-learning", Name: "Learning"},
}

func TestComputeDailyStats_SourceComposition(t *testing.T) {
	activities := []storage.Activity{
		manualEntry(testBase, 60, "cat-work"),
		autoUsage(testBase.Add(time.Hour), 30, "Code", false, false),
		autoUsage(testBase.Add(2*time.Hour), 45, "Code", true, false), // idle
		pomodoro(testBase.Add(3*time.Hour), 25, storage.SessionFocus, true),
		pomodoro(testBase.Add(4*time.Hour), 25, storage.SessionFocus, false), // abandoned
		pomodoro(testBase.Add(5*time.Hour), 5, storage.SessionBreak, false),
	}

	stats := ComputeDailyStats(activities, testCategories, testBase, testBase, time.UTC)
	require.Len(t, stats, 1)
	day := stats[0]

	assert.Equal(t, "2026-03-09", day.Date)
	// Combined = manual 60 + non-idle automatic 30. Idle and pomodoro
	// excluded.
	assert.Equal(t, 90, day.TotalMinutes)
	// Focus counts only completed sessions; breaks count regardless.
	assert.Equal(t, 25, day.FocusMinutes)
	assert.Equal(t, 5, day.BreakMinutes)
	assert.Equal(t, 45, day.IdleMinutes)
	assert.Equal(t, 1, day.CompletedTasks)

	require.Len(t, day.TopCategories, 1)
	assert.Equal(t, "Work", day.TopCategories[0].Name)
	assert.Equal(t, 60, day.TopCategories[0].Minutes)
	assert.InDelta(t, 100.0, day.TopCategories[0].Percentage, 0.001)
}

func TestComputeDailyStats_EmitsEveryDayInRange(t *testing.T) {
	activities := []storage.Activity{
		manualEntry(testBase, 30, ""),
		manualEntry(testBase.AddDate(0, 0, 2), 30, ""),
	}

	stats := ComputeDailyStats(activities, testCategories, testBase, testBase.AddDate(0, 0, 2), time.UTC)
	require.Len(t, stats, 3)
	assert.Equal(t, 30, stats[0].TotalMinutes)
	assert.Zero(t, stats[1].TotalMinutes)
	assert.NotNil(t, stats[1].TopCategories)
	assert.Equal(t, 30, stats[2].TotalMinutes)
}

func TestComputeDailyStats_UnknownCategoryName(t *testing.T) {
	activities := []storage.Activity{manualEntry(testBase, 30, "cat-gone")}

	stats := ComputeDailyStats(activities, testCategories, testBase, testBase, time.UTC)
	require.Len(t, stats, 1)
	require.Len(t, stats[0].TopCategories, 1)
	assert.Equal(t, "Unknown", stats[0].TopCategories[0].Name)
}

func TestComputeHourlyPatterns(t *testing.T) {
	activities := []storage.Activity{
		manualEntry(testBase, 60, ""),                    // day 1, hour 9
		manualEntry(testBase.AddDate(0, 0, 1), 30, ""),   // day 2, hour 9
		autoUsage(testBase.Add(5*time.Hour), 20, "Code", false, false), // hour 14
		autoUsage(testBase.Add(6*time.Hour), 15, "Code", true, false),  // idle, dropped
	}

	patterns := ComputeHourlyPatterns(activities, time.UTC)
	require.Len(t, patterns, 24)

	nine := patterns[9]
	assert.Equal(t, 2, nine.DayCount)
	assert.InDelta(t, 45.0, nine.AvgMinutes, 0.001)

	fourteen := patterns[14]
	assert.Equal(t, 1, fourteen.DayCount)
	assert.InDelta(t, 20.0, fourteen.AvgMinutes, 0.001)

	fifteen := patterns[15]
	assert.Zero(t, fifteen.DayCount)
	assert.Zero(t, fifteen.AvgMinutes)
}
