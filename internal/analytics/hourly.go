package analytics

import (
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// ComputeHourlyPatterns groups the snapshot by hour of day (0-23). An
// activity's minutes land in the hour it started. AvgMinutes is the mean
// over days that had any activity in that hour; DayCount is the number of
// distinct contributing days. All 24 hours are returned.
func ComputeHourlyPatterns(activities []storage.Activity, loc *time.Location) []HourlyPattern {
	type hourBucket struct {
		seconds int64
		days    map[string]bool
	}

	buckets := [24]hourBucket{}

	for i := range activities {
		a := &activities[i]
		seconds := combinedSeconds(a)
		if seconds <= 0 {
			continue
		}

		local := a.StartTime.In(loc)
		hour := local.Hour()
		if buckets[hour].days == nil {
			buckets[hour].days = make(map[string]bool)
		}
		buckets[hour].seconds += seconds
		buckets[hour].days[local.Format(dateLayout)] = true
	}

	patterns := make([]HourlyPattern, 24)
	for hour := range patterns {
		p := HourlyPattern{Hour: hour}
		if n := len(buckets[hour].days); n > 0 {
			p.DayCount = n
			p.AvgMinutes = float64(buckets[hour].seconds) / 60 / float64(n)
		}
		patterns[hour] = p
	}

	return patterns
}
