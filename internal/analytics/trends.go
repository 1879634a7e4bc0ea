package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// Trend grouping granularities.
const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

// ValidGroupBy reports whether g is a supported trend granularity.
func ValidGroupBy(g string) bool {
	return g == GroupByDay || g == GroupByWeek || g == GroupByMonth
}

// bucketKey returns the period key an activity falls into: the date for
// days, the week's Sunday for weeks, YYYY-MM for months.
func bucketKey(t time.Time, groupBy string, loc *time.Location) string {
	local := t.In(loc)
	switch groupBy {
	case GroupByWeek:
		sunday := local.AddDate(0, 0, -int(local.Weekday()))
		return sunday.Format(dateLayout)
	case GroupByMonth:
		return local.Format("2006-01")
	default:
		return local.Format(dateLayout)
	}
}

// ComputeTrends buckets the snapshot's combined minutes by period,
// ascending by period key.
func ComputeTrends(activities []storage.Activity, groupBy string, loc *time.Location) ([]TrendPoint, error) {
	if !ValidGroupBy(groupBy) {
		return nil, fmt.Errorf("invalid group_by %q (use day, week, or month)", groupBy)
	}

	buckets := make(map[string]int64)
	for i := range activities {
		a := &activities[i]
		if seconds := combinedSeconds(a); seconds > 0 {
			buckets[bucketKey(a.StartTime, groupBy, loc)] += seconds
		}
	}

	points := make([]TrendPoint, 0, len(buckets))
	for period, seconds := range buckets {
		points = append(points, TrendPoint{Period: period, Minutes: int(seconds / 60)})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })

	return points, nil
}
