package analytics

import (
	"sort"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// categoryName resolves a category ID against the fetched category set.
func categoryName(id string, categories []storage.Category) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}

// topCategories ranks categorized combined seconds and returns the top n
// with each share of the category total.
func topCategories(bySeconds map[string]int64, categories []storage.Category, n int) []CategoryMinutes {
	var total int64
	for _, s := range bySeconds {
		total += s
	}

	ranked := make([]CategoryMinutes, 0, len(bySeconds))
	for id, seconds := range bySeconds {
		if seconds <= 0 {
			continue
		}
		cm := CategoryMinutes{
			CategoryID: id,
			Name:       categoryName(id, categories),
			Minutes:    int(seconds / 60),
		}
		if total > 0 {
			cm.Percentage = float64(seconds) / float64(total) * 100
		}
		ranked = append(ranked, cm)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Minutes != ranked[j].Minutes {
			return ranked[i].Minutes > ranked[j].Minutes
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// dayAccumulator collects one calendar day's raw seconds.
type dayAccumulator struct {
	combined   int64
	focus      int64
	brk        int64
	idle       int64
	tasks      int
	byCategory map[string]int64
}

// accumulateDays buckets a snapshot into calendar days.
func accumulateDays(activities []storage.Activity, loc *time.Location) map[string]*dayAccumulator {
	days := make(map[string]*dayAccumulator)

	for i := range activities {
		a := &activities[i]
		key := dateKey(a.StartTime, loc)
		acc := days[key]
		if acc == nil {
			acc = &dayAccumulator{byCategory: make(map[string]int64)}
			days[key] = acc
		}

		combined := combinedSeconds(a)
		acc.combined += combined
		acc.focus += focusSeconds(a)
		acc.brk += breakSeconds(a)
		acc.idle += idleSeconds(a)

		if a.SourceType == storage.SourceManual && a.EndTime != nil {
			acc.tasks++
		}
		if combined > 0 && a.CategoryID != "" {
			acc.byCategory[a.CategoryID] += combined
		}
	}

	return days
}

// ComputeDailyStats aggregates the snapshot per calendar day, emitting
// every day from start through end inclusive, ascending. Total minutes are
// manual time entries plus non-idle application usage; focus counts only
// completed focus sessions; breaks count regardless of completion.
func ComputeDailyStats(activities []storage.Activity, categories []storage.Category, start, end time.Time, loc *time.Location) []DailyStats {
	days := accumulateDays(activities, loc)

	stats := []DailyStats{}
	first := time.Date(start.In(loc).Year(), start.In(loc).Month(), start.In(loc).Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.In(loc).Year(), end.In(loc).Month(), end.In(loc).Day(), 0, 0, 0, 0, loc)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		ds := DailyStats{Date: key, TopCategories: []CategoryMinutes{}}

		if acc := days[key]; acc != nil {
			ds.TotalMinutes = int(acc.combined / 60)
			ds.FocusMinutes = int(acc.focus / 60)
			ds.BreakMinutes = int(acc.brk / 60)
			ds.IdleMinutes = int(acc.idle / 60)
			ds.CompletedTasks = acc.tasks
			ds.TopCategories = topCategories(acc.byCategory, categories, 10)
		}

		stats = append(stats, ds)
	}

	return stats
}
