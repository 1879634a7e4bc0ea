package quality

import (
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// DefaultMergeMaxGap is the largest gap between adjacent activities that
// still keeps them in one mergeable cluster.
const DefaultMergeMaxGap = 300 * time.Second

// MergeableGroup is a cluster of chronologically adjacent activities
// separated by gaps no larger than a threshold, a candidate for a manual
// merge. The grouper never merges anything itself.
type MergeableGroup struct {
	Activities      []storage.Activity `json:"activities"`
	TotalGapSeconds int64              `json:"total_gap_seconds"`
}

// FindMergeableGroups walks the sorted snapshot and greedily extends a
// cluster while the gap to the next activity is at most maxGap, closing
// the cluster otherwise. This is the gap detector's adjacency test
// inverted. Only clusters of two or more activities are returned.
func FindMergeableGroups(activities []storage.Activity, maxGap time.Duration) []MergeableGroup {
	groups := []MergeableGroup{}

	var current []storage.Activity
	var gapSum int64

	flush := func() {
		if len(current) >= 2 {
			groups = append(groups, MergeableGroup{
				Activities:      current,
				TotalGapSeconds: gapSum,
			})
		}
		current = nil
		gapSum = 0
	}

	for i := range activities {
		if len(current) == 0 {
			current = []storage.Activity{activities[i]}
			continue
		}

		prev := &current[len(current)-1]
		prevEnd, ok := prev.EffectiveEnd()
		if !ok {
			// Open interval: cannot measure adjacency, close the cluster.
			flush()
			current = []storage.Activity{activities[i]}
			continue
		}

		gap := activities[i].StartTime.Sub(prevEnd)
		if gap <= maxGap {
			if gap > 0 {
				gapSum += int64(gap / time.Second)
			}
			current = append(current, activities[i])
		} else {
			flush()
			current = []storage.Activity{activities[i]}
		}
	}
	flush()

	return groups
}
