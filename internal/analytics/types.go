// Package analytics computes derived statistics over the unified activity
// log: daily and hourly aggregates, the calendar heatmap, weekly
// summaries, trend series, behavioral insights, and the productivity
// score. Everything is recomputed per request from one Store snapshot;
// nothing here is persisted.
package analytics

import (
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

const dateLayout = "2006-01-02"

// CategoryMinutes is one category's share of a period's tracked time.
type CategoryMinutes struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Minutes    int     `json:"minutes"`
	Percentage float64 `json:"percentage"`
}

// DailyStats aggregates one calendar day.
type DailyStats struct {
	Date           string            `json:"date"`
	TotalMinutes   int               `json:"total_minutes"`
	FocusMinutes   int               `json:"focus_minutes"`
	BreakMinutes   int               `json:"break_minutes"`
	IdleMinutes    int               `json:"idle_minutes"`
	CompletedTasks int               `json:"completed_tasks"`
	TopCategories  []CategoryMinutes `json:"top_categories"`
}

// HourlyPattern is the average tracked minutes for one hour of day over a
// window, counting only days that had activity in that hour.
type HourlyPattern struct {
	Hour       int     `json:"hour"`
	AvgMinutes float64 `json:"avg_minutes"`
	DayCount   int     `json:"day_count"`
}

// HeatmapBreakdown splits a heatmap day's minutes by capture path.
type HeatmapBreakdown struct {
	Focus   int `json:"focus"`
	Apps    int `json:"apps"`
	Browser int `json:"browser"`
}

// HeatmapDay is one cell of the yearly calendar heatmap. Intensity is a
// 0-4 band relative to the year's busiest day.
type HeatmapDay struct {
	Date         string           `json:"date"`
	TotalMinutes int              `json:"total_minutes"`
	Intensity    int              `json:"intensity"`
	Breakdown    HeatmapBreakdown `json:"breakdown"`
}

// DayMinutes pairs a date with its tracked minutes.
type DayMinutes struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Minutes int    `json:"minutes"`
}

// WeeklySummary aggregates one Sunday-to-Saturday week.
type WeeklySummary struct {
	WeekStart            string            `json:"week_start"`
	WeekEnd              string            `json:"week_end"`
	TotalMinutes         int               `json:"total_minutes"`
	AvgDailyMinutes      float64           `json:"avg_daily_minutes"`
	TopDay               *DayMinutes       `json:"top_day"`
	TopCategories        []CategoryMinutes `json:"top_categories"`
	GoalsAchieved        int               `json:"goals_achieved"`
	TotalGoals           int               `json:"total_goals"`
	ComparisonToPrevious int               `json:"comparison_to_previous"`
	Insights             []string          `json:"insights"`
}

// TrendPoint is combined tracked minutes for one day/week/month bucket.
type TrendPoint struct {
	Period  string `json:"period"`
	Minutes int    `json:"minutes"`
}

// BehavioralInsight is one natural-language finding over the insight
// window.
type BehavioralInsight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Streak counts consecutive qualifying calendar days: the trailing run
// (Current) and the best run anywhere in the set (Longest).
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Summary is the combined productivity picture over the insight window.
type Summary struct {
	ProductivityScore   int     `json:"productivity_score"`
	DailyAvgMinutes     float64 `json:"daily_avg_minutes"`
	FocusCompletionRate float64 `json:"focus_completion_rate"`
	AvgDailyFocusHours  float64 `json:"avg_daily_focus_hours"`
	WeeklyStreak        int     `json:"weekly_streak"`
	GoalStreak          Streak  `json:"goal_streak"`
	PeakHour            int     `json:"peak_hour"`
	MostProductiveDay   string  `json:"most_productive_day"`
}

// combinedSeconds is the tracked time an activity contributes to the
// headline totals: manual time entries plus non-idle application usage.
// Pomodoro sessions are reported separately as focus/break minutes.
func combinedSeconds(a *storage.Activity) int64 {
	switch a.SourceType {
	case storage.SourceManual:
		return a.Seconds()
	case storage.SourceAutomatic:
		if !a.IsIdle {
			return a.Seconds()
		}
	}
	return 0
}

func focusSeconds(a *storage.Activity) int64 {
	if a.SourceType == storage.SourcePomodoro && a.SessionKind == storage.SessionFocus && a.Completed {
		return a.Seconds()
	}
	return 0
}

func breakSeconds(a *storage.Activity) int64 {
	if a.SourceType == storage.SourcePomodoro && a.SessionKind == storage.SessionBreak {
		return a.Seconds()
	}
	return 0
}

func idleSeconds(a *storage.Activity) int64 {
	if a.SourceType == storage.SourceAutomatic && a.IsIdle {
		return a.Seconds()
	}
	return 0
}

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}
