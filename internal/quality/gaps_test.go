package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldrin/timesieve/internal/storage"
)

// interval builds a closed activity from offsets in minutes from base.
func interval(base time.Time, startMin, endMin int, source storage.SourceType) storage.Activity {
	start := base.Add(time.Duration(startMin) * time.Minute)
	end := base.Add(time.Duration(endMin) * time.Minute)
	dur := int64(endMin-startMin) * 60
	return storage.Activity{
		ID:              start.Format("15:04") + "-" + end.Format("15:04"),
		SourceType:      source,
		Title:           "entry",
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: &dur,
	}
}

var testBase = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestDetectGaps_ThresholdFiltersGap(t *testing.T) {
	// 09:00-09:30, then 09:40-10:00: a 600 second gap.
	activities := []storage.Activity{
		interval(testBase, 0, 30, storage.SourceManual),
		interval(testBase, 40, 60, storage.SourceManual),
	}

	gaps := DetectGaps(activities, 5*time.Minute)
	require.Len(t, gaps, 1)
	assert.Equal(t, int64(600), gaps[0].DurationSeconds)
	assert.True(t, gaps[0].StartTime.Equal(testBase.Add(30*time.Minute)))
	assert.True(t, gaps[0].EndTime.Equal(testBase.Add(40*time.Minute)))

	// The same pair is invisible at a 15 minute threshold.
	assert.Empty(t, DetectGaps(activities, 15*time.Minute))
}

func TestDetectGaps_BoundaryIsInclusive(t *testing.T) {
	// Gap of exactly 5 minutes.
	activities := []storage.Activity{
		interval(testBase, 0, 30, storage.SourceManual),
		interval(testBase, 35, 60, storage.SourceManual),
	}

	gaps := DetectGaps(activities, 5*time.Minute)
	require.Len(t, gaps, 1)
	assert.Equal(t, int64(300), gaps[0].DurationSeconds)
}

func TestDetectGaps_SkipsOpenIntervals(t *testing.T) {
	open := storage.Activity{
		ID:         "open",
		SourceType: storage.SourceAutomatic,
		StartTime:  testBase,
	}
	activities := []storage.Activity{
		open,
		interval(testBase, 60, 90, storage.SourceManual),
		interval(testBase, 120, 150, storage.SourceManual),
	}

	// The open interval pair is skipped; only the 90->120 gap remains.
	gaps := DetectGaps(activities, 5*time.Minute)
	require.Len(t, gaps, 1)
	assert.True(t, gaps[0].StartTime.Equal(testBase.Add(90*time.Minute)))
}

func TestDetectGaps_DurationFallback(t *testing.T) {
	// End time missing but duration stored: the effective end is used.
	dur := int64(1800)
	first := storage.Activity{
		ID:              "a1",
		SourceType:      storage.SourceManual,
		StartTime:       testBase,
		DurationSeconds: &dur,
	}
	activities := []storage.Activity{
		first,
		interval(testBase, 40, 60, storage.SourceManual),
	}

	gaps := DetectGaps(activities, 5*time.Minute)
	require.Len(t, gaps, 1)
	assert.Equal(t, int64(600), gaps[0].DurationSeconds)
}

func TestDetectGaps_NoActivities(t *testing.T) {
	assert.Empty(t, DetectGaps(nil, 5*time.Minute))
	assert.Empty(t, DetectGaps([]storage.Activity{interval(testBase, 0, 30, storage.SourceManual)}, 5*time.Minute))
}

func TestGapStatistics(t *testing.T) {
	stats := GapStatistics(nil)
	assert.Zero(t, stats.TotalGaps)
	assert.Zero(t, stats.TotalUntrackedSeconds)
	assert.Zero(t, stats.AverageGapSeconds)
	assert.Zero(t, stats.LongestGapSeconds)

	gaps := []Gap{
		{DurationSeconds: 300},
		{DurationSeconds: 900},
		{DurationSeconds: 600},
	}
	stats = GapStatistics(gaps)
	assert.Equal(t, 3, stats.TotalGaps)
	assert.Equal(t, int64(1800), stats.TotalUntrackedSeconds)
	assert.InDelta(t, 600.0, stats.AverageGapSeconds, 0.001)
	assert.Equal(t, int64(900), stats.LongestGapSeconds)
}
