package quality

import (
	"github.com/veldrin/timesieve/internal/storage"
)

// FindOrphanedActivities returns activities whose category no longer
// exists. The category set is fetched once per report; an empty CategoryID
// is "uncategorized", not orphaned.
func FindOrphanedActivities(activities []storage.Activity, categories []storage.Category) []storage.Activity {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	orphaned := []storage.Activity{}
	for _, a := range activities {
		if a.CategoryID != "" && !known[a.CategoryID] {
			orphaned = append(orphaned, a)
		}
	}
	return orphaned
}

// FindZeroDuration returns activities with a stored duration under one
// second. Activities without a stored duration are open intervals, not
// zero-duration records.
func FindZeroDuration(activities []storage.Activity) []storage.Activity {
	zero := []storage.Activity{}
	for _, a := range activities {
		if a.DurationSeconds != nil && *a.DurationSeconds < 1 {
			zero = append(zero, a)
		}
	}
	return zero
}
