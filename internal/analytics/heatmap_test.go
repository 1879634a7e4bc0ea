package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldrin/timesieve/internal/storage"
)

func TestIntensityBand(t *testing.T) {
	assert.Equal(t, 0, IntensityBand(0, 100))
	assert.Equal(t, 0, IntensityBand(50, 0))

	// Bands are inclusive at the upper edge.
	assert.Equal(t, 1, IntensityBand(20, 100))
	assert.Equal(t, 2, IntensityBand(21, 100))
	assert.Equal(t, 2, IntensityBand(40, 100))
	assert.Equal(t, 3, IntensityBand(41, 100))
	assert.Equal(t, 3, IntensityBand(70, 100))
	assert.Equal(t, 4, IntensityBand(71, 100))
	assert.Equal(t, 4, IntensityBand(100, 100))
}

func heatmapByDate(days []HeatmapDay) map[string]HeatmapDay {
	byDate := make(map[string]HeatmapDay, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}
	return byDate
}

func TestComputeHeatmap_Breakdown(t *testing.T) {
	activities := []storage.Activity{
		manualEntry(testBase, 60, "cat-work"),                          // apps
		autoUsage(testBase.Add(time.Hour), 30, "Firefox", false, true), // browser
		autoUsage(testBase.Add(2*time.Hour), 20, "Code", false, false), // apps
		autoUsage(testBase.Add(3*time.Hour), 45, "Code", true, false),  // idle, excluded
		pomodoro(testBase.Add(4*time.Hour), 25, storage.SessionFocus, true),
		pomodoro(testBase.Add(5*time.Hour), 25, storage.SessionFocus, false), // abandoned, excluded
		pomodoro(testBase.Add(6*time.Hour), 5, storage.SessionBreak, true),   // excluded
	}

	days := ComputeHeatmap(activities, 2026, time.UTC)
	require.Len(t, days, 365)

	day := heatmapByDate(days)["2026-03-09"]
	assert.Equal(t, 25, day.Breakdown.Focus)
	assert.Equal(t, 80, day.Breakdown.Apps)
	assert.Equal(t, 30, day.Breakdown.Browser)
	assert.Equal(t, 135, day.TotalMinutes)

	// The busiest day of the year sits in the top band.
	assert.Equal(t, 4, day.Intensity)
}

func TestComputeHeatmap_IntensityRelativeToYearMax(t *testing.T) {
	activities := []storage.Activity{
		manualEntry(testBase, 135, "cat-work"),
		// 27/135 is exactly 0.2, the top of band 1.
		manualEntry(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), 27, "cat-work"),
	}

	byDate := heatmapByDate(ComputeHeatmap(activities, 2026, time.UTC))

	assert.Equal(t, 4, byDate["2026-03-09"].Intensity)
	assert.Equal(t, 1, byDate["2026-06-01"].Intensity)
	assert.Equal(t, 0, byDate["2026-06-02"].Intensity)
	assert.Equal(t, 0, byDate["2026-06-02"].TotalMinutes)
}

func TestComputeHeatmap_EmitsWholeYear(t *testing.T) {
	days := ComputeHeatmap(nil, 2026, time.UTC)
	require.Len(t, days, 365)
	assert.Equal(t, "2026-01-01", days[0].Date)
	assert.Equal(t, "2026-12-31", days[len(days)-1].Date)

	leap := ComputeHeatmap(nil, 2028, time.UTC)
	assert.Len(t, leap, 366)
}
