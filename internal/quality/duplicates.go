package quality

import (
	"math"

	"github.com/veldrin/timesieve/internal/storage"
)

// DefaultSimilarityThreshold is the minimum similarity score (0-100) for
// two activities to be considered duplicates.
const DefaultSimilarityThreshold = 80

// DuplicateGroup is an anchor activity plus the activities judged
// duplicates of it. Similarity is the score the detector reported when the
// group formed, a representative value rather than a pairwise average.
type DuplicateGroup struct {
	Activities []storage.Activity `json:"activities"`
	Similarity int                `json:"similarity"`
}

// DetectDuplicates scans the snapshot for near-identical activities. Each
// unvisited activity is compared against the remaining pool; matches at or
// above the threshold form one group, and every member is marked visited,
// so an activity belongs to at most one group per pass. The visited set is
// local to the call, so repeated passes over the same snapshot are
// independent. Worst case O(n²) comparisons.
func DetectDuplicates(activities []storage.Activity, threshold int) []DuplicateGroup {
	groups := []DuplicateGroup{}
	visited := make(map[string]bool, len(activities))

	key := func(a *storage.Activity) string {
		return a.ID + "|" + string(a.SourceType)
	}

	for i := range activities {
		anchor := &activities[i]
		if visited[key(anchor)] {
			continue
		}

		var members []storage.Activity
		groupScore := 0

		for j := i + 1; j < len(activities); j++ {
			candidate := &activities[j]
			if visited[key(candidate)] {
				continue
			}

			score := Similarity(anchor, candidate)
			if score >= threshold {
				if len(members) == 0 {
					// The first match's score stands for the group.
					groupScore = score
				}
				members = append(members, *candidate)
				visited[key(candidate)] = true
			}
		}

		if len(members) > 0 {
			visited[key(anchor)] = true
			groups = append(groups, DuplicateGroup{
				Activities: append([]storage.Activity{*anchor}, members...),
				Similarity: groupScore,
			})
		}
	}

	return groups
}

// Similarity scores how alike two activities are on a 0-100 scale. Time
// range overlap contributes up to 50 points; equal non-empty titles add
// 20, equal non-empty app names 15, and equal non-empty categories 15.
func Similarity(a, b *storage.Activity) int {
	score := overlapScore(a, b)

	if a.Title != "" && a.Title == b.Title {
		score += 20
	}
	if a.AppName != "" && a.AppName == b.AppName {
		score += 15
	}
	if a.CategoryID != "" && a.CategoryID == b.CategoryID {
		score += 15
	}

	return score
}

// overlapScore maps the overlap/union ratio of the two time ranges onto
// 0-50. Two zero-length ranges at the same instant count as a full
// overlap.
func overlapScore(a, b *storage.Activity) int {
	aEnd, aOK := a.EffectiveEnd()
	bEnd, bOK := b.EffectiveEnd()
	if !aOK {
		aEnd = a.StartTime
	}
	if !bOK {
		bEnd = b.StartTime
	}

	start := a.StartTime
	if b.StartTime.After(start) {
		start = b.StartTime
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}

	unionStart := a.StartTime
	if b.StartTime.Before(unionStart) {
		unionStart = b.StartTime
	}
	unionEnd := aEnd
	if bEnd.After(unionEnd) {
		unionEnd = bEnd
	}

	union := unionEnd.Sub(unionStart)
	if union <= 0 {
		// Both ranges collapse to a point.
		if a.StartTime.Equal(b.StartTime) {
			return 50
		}
		return 0
	}

	overlap := end.Sub(start)
	if overlap <= 0 {
		return 0
	}

	return int(math.Round(float64(overlap) / float64(union) * 50))
}
