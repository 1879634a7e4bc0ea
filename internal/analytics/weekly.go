package analytics

import (
	"math"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// WeekBounds returns the Sunday start (inclusive) and following Sunday
// (exclusive) of the week `offset` weeks before the week containing now.
// Offset 0 is the current week.
func WeekBounds(now time.Time, offset int, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	sunday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	sunday = sunday.AddDate(0, 0, -int(local.Weekday())-7*offset)
	return sunday, sunday.AddDate(0, 0, 7)
}

// ComputeWeeklySummary aggregates one Sunday-to-Saturday week and compares
// it to the previous one. Goals are daily: each active goal is evaluated
// once per day of the week, achieved when that day's minutes for the
// goal's category (any category when unset) reach the target.
func ComputeWeeklySummary(week, previous []storage.Activity, categories []storage.Category, goals []storage.Goal, weekStart time.Time, loc *time.Location) WeeklySummary {
	days := accumulateDays(week, loc)

	summary := WeeklySummary{
		WeekStart:     weekStart.Format(dateLayout),
		WeekEnd:       weekStart.AddDate(0, 0, 6).Format(dateLayout),
		TopCategories: []CategoryMinutes{},
		Insights:      []string{},
	}

	var totalSeconds int64
	byCategory := make(map[string]int64)

	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		acc := days[date.Format(dateLayout)]
		if acc == nil {
			continue
		}

		totalSeconds += acc.combined
		for id, s := range acc.byCategory {
			byCategory[id] += s
		}

		minutes := int(acc.combined / 60)
		if summary.TopDay == nil || minutes > summary.TopDay.Minutes {
			summary.TopDay = &DayMinutes{
				Date:    date.Format(dateLayout),
				Weekday: date.Weekday().String(),
				Minutes: minutes,
			}
		}
	}

	summary.TotalMinutes = int(totalSeconds / 60)
	summary.AvgDailyMinutes = float64(summary.TotalMinutes) / 7
	summary.TopCategories = topCategories(byCategory, categories, 5)

	if summary.TotalMinutes == 0 {
		summary.TopDay = nil
	}

	summary.GoalsAchieved, summary.TotalGoals = evaluateGoals(days, goals, weekStart)

	var prevSeconds int64
	for i := range previous {
		prevSeconds += combinedSeconds(&previous[i])
	}
	prevMinutes := int(prevSeconds / 60)
	if prevMinutes > 0 {
		summary.ComparisonToPrevious = int(math.Round(
			float64(summary.TotalMinutes-prevMinutes) / float64(prevMinutes) * 100))
	}

	summary.Insights = WeeklyInsights(&summary)

	return summary
}

// evaluateGoals checks every active daily goal against every day of the
// week. TotalGoals is seven slots per goal.
func evaluateGoals(days map[string]*dayAccumulator, goals []storage.Goal, weekStart time.Time) (achieved, total int) {
	total = len(goals) * 7

	for day := 0; day < 7; day++ {
		acc := days[weekStart.AddDate(0, 0, day).Format(dateLayout)]
		for _, g := range goals {
			var seconds int64
			if acc != nil {
				if g.CategoryID == "" {
					seconds = acc.combined
				} else {
					seconds = acc.byCategory[g.CategoryID]
				}
			}
			if int(seconds/60) >= g.TargetMinutes {
				achieved++
			}
		}
	}

	return achieved, total
}
