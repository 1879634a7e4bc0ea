package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// Default window sizes for the insight and scoring operations.
const (
	DefaultInsightWindowDays = 30
	DefaultStreakWindowDays  = 60
)

// Service runs the aggregation operations against the Store. Each
// operation fetches the ranges it needs exactly once and computes every
// derived number from that snapshot.
type Service struct {
	store       storage.Store
	loc         *time.Location
	insightDays int
	streakDays  int
}

// Options configures a Service. A nil Location defaults to the
// process-local timezone, which decides day bucketing everywhere;
// non-positive window sizes fall back to the defaults.
type Options struct {
	Location          *time.Location
	InsightWindowDays int
	StreakWindowDays  int
}

// NewService creates an analytics Service.
func NewService(store storage.Store, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	insightDays := opts.InsightWindowDays
	if insightDays <= 0 {
		insightDays = DefaultInsightWindowDays
	}
	streakDays := opts.StreakWindowDays
	if streakDays <= 0 {
		streakDays = DefaultStreakWindowDays
	}
	return &Service{store: store, loc: loc, insightDays: insightDays, streakDays: streakDays}
}

func (s *Service) snapshot(ctx context.Context, start, end time.Time) ([]storage.Activity, error) {
	activities, err := s.store.ListActivities(ctx, storage.ActivityQuery{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	return activities, nil
}

// Daily returns per-day statistics for every day from start through end.
func (s *Service) Daily(ctx context.Context, start, end time.Time) ([]DailyStats, error) {
	activities, err := s.snapshot(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return ComputeDailyStats(activities, categories, start, end, s.loc), nil
}

// Hourly returns the hour-of-day pattern over the last `days` days.
func (s *Service) Hourly(ctx context.Context, days int) ([]HourlyPattern, error) {
	if days <= 0 {
		days = 14
	}
	now := time.Now().In(s.loc)
	activities, err := s.snapshot(ctx, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}
	return ComputeHourlyPatterns(activities, s.loc), nil
}

// Heatmap returns one cell per day of the given year.
func (s *Service) Heatmap(ctx context.Context, year int) ([]HeatmapDay, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	activities, err := s.snapshot(ctx, start, start.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	return ComputeHeatmap(activities, year, s.loc), nil
}

// Weekly returns the summary of the week `offset` weeks back (0 = the
// current week). The previous week is fetched in the same snapshot window
// for the comparison.
func (s *Service) Weekly(ctx context.Context, offset int) (WeeklySummary, error) {
	weekStart, weekEnd := WeekBounds(time.Now(), offset, s.loc)
	prevStart := weekStart.AddDate(0, 0, -7)

	activities, err := s.snapshot(ctx, prevStart, weekEnd)
	if err != nil {
		return WeeklySummary{}, err
	}

	var week, previous []storage.Activity
	for _, a := range activities {
		if a.StartTime.Before(weekStart) {
			previous = append(previous, a)
		} else {
			week = append(week, a)
		}
	}

	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("fetch categories: %w", err)
	}
	goals, err := s.store.GetActiveGoals(ctx)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("fetch goals: %w", err)
	}

	return ComputeWeeklySummary(week, previous, categories, goals, weekStart, s.loc), nil
}

// Trends returns combined minutes per day/week/month bucket over the
// range.
func (s *Service) Trends(ctx context.Context, start, end time.Time, groupBy string) ([]TrendPoint, error) {
	if !ValidGroupBy(groupBy) {
		return nil, fmt.Errorf("invalid group_by %q (use day, week, or month)", groupBy)
	}
	activities, err := s.snapshot(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return ComputeTrends(activities, groupBy, s.loc)
}

// Insights returns the behavioral findings over the insight window. The
// tracking streak is computed over the wider streak window.
func (s *Service) Insights(ctx context.Context) ([]BehavioralInsight, error) {
	now := time.Now().In(s.loc)

	window, err := s.snapshot(ctx, now.AddDate(0, 0, -s.streakDays), now)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	recent := filterSince(window, now.AddDate(0, 0, -s.insightDays))
	streak := CalculateStreak(QualifyingActivityDates(window, s.loc))

	return BehavioralInsights(recent, categories, streak, s.loc), nil
}

// Summary returns the combined productivity picture over the insight
// window.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	now := time.Now().In(s.loc)

	window, err := s.snapshot(ctx, now.AddDate(0, 0, -s.streakDays), now)
	if err != nil {
		return Summary{}, err
	}
	goals, err := s.store.GetActiveGoals(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch goals: %w", err)
	}

	recent := filterSince(window, now.AddDate(0, 0, -s.insightDays))
	streak := CalculateStreak(QualifyingActivityDates(window, s.loc))
	goalStreak := CalculateStreak(QualifyingGoalDates(window, goals, s.loc))

	return ComputeSummary(recent, streak, goalStreak, s.insightDays, s.loc), nil
}

func filterSince(activities []storage.Activity, since time.Time) []storage.Activity {
	filtered := make([]storage.Activity, 0, len(activities))
	for _, a := range activities {
		if !a.StartTime.Before(since) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
