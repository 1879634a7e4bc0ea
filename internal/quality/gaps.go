// Package quality reconciles the multi-source activity log: it finds
// untracked gaps, near-duplicate records, and mergeable clusters, validates
// activities in batch, and folds everything into a single 0-100 data
// quality score. All detectors are pure functions over one snapshot of
// activities sorted ascending by start time.
package quality

import (
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// Gap is an interval between two chronologically adjacent activities with
// no coverage.
type Gap struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// GapStats summarizes a set of detected gaps.
type GapStats struct {
	TotalGaps             int     `json:"total_gaps"`
	TotalUntrackedSeconds int64   `json:"total_untracked_seconds"`
	AverageGapSeconds     float64 `json:"average_gap_seconds"`
	LongestGapSeconds     int64   `json:"longest_gap_seconds"`
}

// DetectGaps walks consecutive pairs of the sorted snapshot and returns
// every interval of at least minGap between one activity's end and the
// next activity's start. The boundary is inclusive: a gap exactly equal to
// minGap is reported. Pairs where the earlier activity has no resolvable
// end are skipped.
func DetectGaps(activities []storage.Activity, minGap time.Duration) []Gap {
	gaps := []Gap{}

	for i := 0; i+1 < len(activities); i++ {
		prevEnd, ok := activities[i].EffectiveEnd()
		if !ok {
			continue
		}

		gap := activities[i+1].StartTime.Sub(prevEnd)
		if gap >= minGap {
			gaps = append(gaps, Gap{
				StartTime:       prevEnd,
				EndTime:         activities[i+1].StartTime,
				DurationSeconds: int64(gap / time.Second),
			})
		}
	}

	return gaps
}

// GapStatistics derives aggregate numbers from a set of gaps.
func GapStatistics(gaps []Gap) GapStats {
	stats := GapStats{TotalGaps: len(gaps)}

	for _, g := range gaps {
		stats.TotalUntrackedSeconds += g.DurationSeconds
		if g.DurationSeconds > stats.LongestGapSeconds {
			stats.LongestGapSeconds = g.DurationSeconds
		}
	}

	if len(gaps) > 0 {
		stats.AverageGapSeconds = float64(stats.TotalUntrackedSeconds) / float64(len(gaps))
	}

	return stats
}
