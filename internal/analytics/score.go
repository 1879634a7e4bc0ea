package analytics

import (
	"math"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// Productivity score defaults when no data exists in the window.
const (
	DefaultPeakHour          = 9
	DefaultMostProductiveDay = "Monday"

	// With zero focus sessions the completion rate falls back to a
	// deliberate neutral midpoint, not 0 or 100.
	neutralFocusRate = 50
)

// ComputeSummary combines the window snapshot with the activity streak
// into the productivity picture. The daily average divides by windowDays
// (non-positive values fall back to the default window):
//
//	timeScore        = min(dailyAvgMinutes/240 * 40, 40)
//	focusScore       = focusCompletionRate/100 * 30
//	consistencyScore = min(streak.Current/30 * 30, 30)
//	productivityScore = round(sum), in [0,100] by construction
func ComputeSummary(activities []storage.Activity, streak Streak, goalStreak Streak, windowDays int, loc *time.Location) Summary {
	if windowDays <= 0 {
		windowDays = DefaultInsightWindowDays
	}

	summary := Summary{
		WeeklyStreak:      streak.Current,
		GoalStreak:        goalStreak,
		PeakHour:          DefaultPeakHour,
		MostProductiveDay: DefaultMostProductiveDay,
	}

	var productiveSeconds int64
	for i := range activities {
		productiveSeconds += combinedSeconds(&activities[i])
	}
	summary.DailyAvgMinutes = float64(productiveSeconds) / 60 / float64(windowDays)

	summary.FocusCompletionRate = neutralFocusRate
	if rate, ok := focusCompletionRate(activities); ok {
		summary.FocusCompletionRate = rate
	}

	timeScore := math.Min(summary.DailyAvgMinutes/240*40, 40)
	focusScore := summary.FocusCompletionRate / 100 * 30
	consistencyScore := math.Min(float64(streak.Current)/30*30, 30)

	score := int(math.Round(timeScore + focusScore + consistencyScore))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	summary.ProductivityScore = score

	summary.AvgDailyFocusHours = avgDailyFocusHours(activities, loc)

	if peak, ok := peakHour(activities, loc); ok {
		summary.PeakHour = peak
	}
	if weekday, ok := mostProductiveWeekday(activities, loc); ok {
		summary.MostProductiveDay = weekday
	}

	return summary
}

// avgDailyFocusHours is the mean of daily completed-focus hours over days
// with at least one focus session, rounded to one decimal.
func avgDailyFocusHours(activities []storage.Activity, loc *time.Location) float64 {
	byDay := make(map[string]int64)

	for i := range activities {
		a := &activities[i]
		if a.SourceType == storage.SourcePomodoro && a.SessionKind == storage.SessionFocus {
			key := dateKey(a.StartTime, loc)
			byDay[key] += focusSeconds(a)
		}
	}
	if len(byDay) == 0 {
		return 0
	}

	var totalHours float64
	for _, seconds := range byDay {
		totalHours += float64(seconds) / 3600
	}

	return math.Round(totalHours/float64(len(byDay))*10) / 10
}

// QualifyingActivityDates returns the set of calendar days with at least
// one tracked activity, the streak calculator's input.
func QualifyingActivityDates(activities []storage.Activity, loc *time.Location) map[string]bool {
	dates := make(map[string]bool)
	for i := range activities {
		dates[dateKey(activities[i].StartTime, loc)] = true
	}
	return dates
}

// QualifyingGoalDates returns the set of calendar days on which at least
// one active daily goal was achieved.
func QualifyingGoalDates(activities []storage.Activity, goals []storage.Goal, loc *time.Location) map[string]bool {
	if len(goals) == 0 {
		return map[string]bool{}
	}

	days := accumulateDays(activities, loc)
	dates := make(map[string]bool)

	for key, acc := range days {
		for _, g := range goals {
			seconds := acc.combined
			if g.CategoryID != "" {
				seconds = acc.byCategory[g.CategoryID]
			}
			if int(seconds/60) >= g.TargetMinutes {
				dates[key] = true
				break
			}
		}
	}

	return dates
}
