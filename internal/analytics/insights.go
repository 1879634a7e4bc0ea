package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// WeeklyInsights derives up to four findings from a weekly summary. The
// four checks are independent of each other; within a check the two
// branches are exclusive. Comparisons use strict inequalities: a 10%
// change fires neither branch.
func WeeklyInsights(s *WeeklySummary) []string {
	insights := []string{}

	if s.ComparisonToPrevious > 10 {
		insights = append(insights, fmt.Sprintf(
			"Your tracked time increased by %d%% compared to last week. Great momentum!",
			s.ComparisonToPrevious))
	} else if s.ComparisonToPrevious < -10 {
		insights = append(insights, fmt.Sprintf(
			"Your tracked time decreased by %d%% compared to last week.",
			-s.ComparisonToPrevious))
	}

	if s.TopDay != nil {
		insights = append(insights, fmt.Sprintf(
			"%s was your most productive day with %d minutes tracked.",
			s.TopDay.Weekday, s.TopDay.Minutes))
	}

	if len(s.TopCategories) > 0 {
		insights = append(insights, fmt.Sprintf(
			"You focused most on %s this week.", s.TopCategories[0].Name))
	}

	avgDaily := float64(s.TotalMinutes) / 7
	if avgDaily >= 120 {
		insights = append(insights, fmt.Sprintf(
			"Excellent! You averaged %.0f minutes of tracked time per day.", avgDaily))
	} else if avgDaily < 60 {
		insights = append(insights,
			"Try to track more of your day to build a clearer picture of your time.")
	}

	return insights
}

// hourLabel names the part of day an hour falls into.
func hourLabel(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// BehavioralInsights derives findings from a recent-activity snapshot.
// Each insight is independent and emitted only when its underlying data
// exists. The streak input covers the wider qualifying-day window.
func BehavioralInsights(activities []storage.Activity, categories []storage.Category, streak Streak, loc *time.Location) []BehavioralInsight {
	insights := []BehavioralInsight{}

	if peak, ok := peakHour(activities, loc); ok {
		insights = append(insights, BehavioralInsight{
			Type:  "peak_hour",
			Title: "Peak Performance Hours",
			Description: fmt.Sprintf("You're most active around %d:00 in the %s.",
				peak, hourLabel(peak)),
		})
	}

	if weekday, ok := mostProductiveWeekday(activities, loc); ok {
		insights = append(insights, BehavioralInsight{
			Type:        "productive_day",
			Title:       "Most Productive Day",
			Description: fmt.Sprintf("%s is your most productive day of the week.", weekday),
		})
	}

	if top, ok := topEntryCategory(activities, categories); ok {
		insights = append(insights, BehavioralInsight{
			Type:        "category_trend",
			Title:       "Top Category",
			Description: fmt.Sprintf("You spent the most logged time on %s this month.", top),
		})
	}

	if app, sessions, avgMinutes, ok := topDistraction(activities); ok {
		insights = append(insights, BehavioralInsight{
			Type:  "distraction",
			Title: "Possible Distraction",
			Description: fmt.Sprintf("You opened %s %d times, averaging only %.1f minutes per session.",
				app, sessions, avgMinutes),
		})
	}

	if rate, ok := focusCompletionRate(activities); ok {
		quality := "Try to see more of them through."
		if rate >= 75 {
			quality = "Good work."
		}
		insights = append(insights, BehavioralInsight{
			Type:  "focus_quality",
			Title: "Focus Session Quality",
			Description: fmt.Sprintf("You completed %.0f%% of your focus sessions. %s",
				rate, quality),
		})
	}

	if streak.Current > 0 {
		desc := fmt.Sprintf("You've tracked time %d days in a row.", streak.Current)
		if streak.Current >= 7 {
			desc += " Impressive!"
		}
		insights = append(insights, BehavioralInsight{
			Type:        "streak",
			Title:       "Tracking Streak",
			Description: desc,
		})
	}

	return insights
}

// peakHour finds the hour of day with the highest combined minutes.
func peakHour(activities []storage.Activity, loc *time.Location) (int, bool) {
	var byHour [24]int64
	var any bool

	for i := range activities {
		a := &activities[i]
		if seconds := combinedSeconds(a); seconds > 0 {
			byHour[a.StartTime.In(loc).Hour()] += seconds
			any = true
		}
	}
	if !any {
		return 0, false
	}

	peak := 0
	for hour, seconds := range byHour {
		if seconds > byHour[peak] {
			peak = hour
		}
	}
	return peak, true
}

// mostProductiveWeekday finds the weekday with the highest combined
// minutes.
func mostProductiveWeekday(activities []storage.Activity, loc *time.Location) (string, bool) {
	var byDay [7]int64
	var any bool

	for i := range activities {
		a := &activities[i]
		if seconds := combinedSeconds(a); seconds > 0 {
			byDay[int(a.StartTime.In(loc).Weekday())] += seconds
			any = true
		}
	}
	if !any {
		return "", false
	}

	best := 0
	for day, seconds := range byDay {
		if seconds > byDay[best] {
			best = day
		}
	}
	return time.Weekday(best).String(), true
}

// topEntryCategory finds the category with the most manual time-entry
// minutes.
func topEntryCategory(activities []storage.Activity, categories []storage.Category) (string, bool) {
	bySeconds := make(map[string]int64)
	for i := range activities {
		a := &activities[i]
		if a.SourceType == storage.SourceManual && a.CategoryID != "" {
			bySeconds[a.CategoryID] += a.Seconds()
		}
	}

	var topID string
	var topSeconds int64
	for id, seconds := range bySeconds {
		if seconds > topSeconds {
			topID, topSeconds = id, seconds
		}
	}
	if topID == "" {
		return "", false
	}
	return categoryName(topID, categories), true
}

// topDistraction finds the app with at least five sessions averaging
// under ten minutes; the highest session count wins.
func topDistraction(activities []storage.Activity) (app string, sessions int, avgMinutes float64, ok bool) {
	type appUsage struct {
		sessions int
		seconds  int64
	}
	byApp := make(map[string]*appUsage)

	for i := range activities {
		a := &activities[i]
		if a.SourceType != storage.SourceAutomatic || a.IsIdle || a.AppName == "" {
			continue
		}
		u := byApp[a.AppName]
		if u == nil {
			u = &appUsage{}
			byApp[a.AppName] = u
		}
		u.sessions++
		u.seconds += a.Seconds()
	}

	for name, u := range byApp {
		avg := float64(u.seconds) / 60 / float64(u.sessions)
		if u.sessions >= 5 && avg < 10 && u.sessions > sessions {
			app, sessions, avgMinutes, ok = name, u.sessions, avg, true
		}
	}
	return app, sessions, avgMinutes, ok
}

// focusCompletionRate is the completed share of focus sessions as a
// percentage, defined only when at least one focus session exists.
func focusCompletionRate(activities []storage.Activity) (float64, bool) {
	var total, completed int
	for i := range activities {
		a := &activities[i]
		if a.SourceType == storage.SourcePomodoro && a.SessionKind == storage.SessionFocus {
			total++
			if a.Completed {
				completed++
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return math.Round(float64(completed) / float64(total) * 100), true
}
