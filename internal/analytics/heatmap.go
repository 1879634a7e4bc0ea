package analytics

import (
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// IntensityBand maps a day's minutes to a 0-4 band relative to the year's
// busiest day: zero days are 0, then ratio <=0.2 is 1, <=0.4 is 2,
// <=0.7 is 3, else 4.
func IntensityBand(dayMinutes, yearMax int) int {
	if dayMinutes == 0 || yearMax == 0 {
		return 0
	}
	ratio := float64(dayMinutes) / float64(yearMax)
	switch {
	case ratio <= 0.2:
		return 1
	case ratio <= 0.4:
		return 2
	case ratio <= 0.7:
		return 3
	default:
		return 4
	}
}

// ComputeHeatmap aggregates the snapshot into one cell per day of the
// year. A day's total is its combined minutes plus completed focus
// minutes; the breakdown splits it into focus sessions, non-browser usage
// (including manual entries), and browser usage.
func ComputeHeatmap(activities []storage.Activity, year int, loc *time.Location) []HeatmapDay {
	type cell struct {
		focus   int64
		apps    int64
		browser int64
	}

	cells := make(map[string]*cell)

	for i := range activities {
		a := &activities[i]
		key := dateKey(a.StartTime, loc)
		c := cells[key]
		if c == nil {
			c = &cell{}
			cells[key] = c
		}

		c.focus += focusSeconds(a)

		switch a.SourceType {
		case storage.SourceManual:
			c.apps += a.Seconds()
		case storage.SourceAutomatic:
			if a.IsIdle {
				break
			}
			if a.IsBrowser {
				c.browser += a.Seconds()
			} else {
				c.apps += a.Seconds()
			}
		}
	}

	first := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)

	days := []HeatmapDay{}
	yearMax := 0

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		hd := HeatmapDay{Date: key}
		if c := cells[key]; c != nil {
			hd.Breakdown = HeatmapBreakdown{
				Focus:   int(c.focus / 60),
				Apps:    int(c.apps / 60),
				Browser: int(c.browser / 60),
			}
			hd.TotalMinutes = hd.Breakdown.Focus + hd.Breakdown.Apps + hd.Breakdown.Browser
			if hd.TotalMinutes > yearMax {
				yearMax = hd.TotalMinutes
			}
		}
		days = append(days, hd)
	}

	for i := range days {
		days[i].Intensity = IntensityBand(days[i].TotalMinutes, yearMax)
	}

	return days
}
