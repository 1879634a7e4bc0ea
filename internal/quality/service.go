package quality

import (
	"context"
	"fmt"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// ActivityValidation pairs an activity with its validation outcome.
type ActivityValidation struct {
	Activity storage.Activity `json:"activity"`
	Errors   []string         `json:"errors,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

// BatchValidation splits a validated snapshot into valid and invalid
// activities.
type BatchValidation struct {
	Valid   []ActivityValidation `json:"valid"`
	Invalid []ActivityValidation `json:"invalid"`
}

// RecalcResult reports a duration recalculation pass. One failed update
// does not abort the batch; each failure is appended to Errors and
// processing continues.
type RecalcResult struct {
	Success      bool     `json:"success"`
	Recalculated int      `json:"recalculated"`
	Errors       []string `json:"errors"`
}

// ZeroDurationResult lists zero-duration activities and how many were
// removed (0 unless removal was confirmed).
type ZeroDurationResult struct {
	Activities []storage.Activity `json:"activities"`
	Removed    int64              `json:"removed"`
}

// Service runs the reconciliation operations against the Store. Every
// read operation fetches its snapshot exactly once; mutations run in their
// own store transactions, never inside a report read.
type Service struct {
	store storage.Store
}

// NewService creates a quality Service over the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) snapshot(ctx context.Context, start, end time.Time) ([]storage.Activity, error) {
	activities, err := s.store.ListActivities(ctx, storage.ActivityQuery{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	return activities, nil
}

// Gaps returns untracked intervals of at least minGap in the range.
func (s *Service) Gaps(ctx context.Context, start, end time.Time, minGap time.Duration) ([]Gap, error) {
	activities, err := s.snapshot(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return DetectGaps(activities, minGap), nil
}

// GapStats returns aggregate gap statistics for the range.
func (s *Service) GapStats(ctx context.Context, start, end time.Time, minGap time.Duration) (GapStats, error) {
	gaps, err := s.Gaps(ctx, start, end, minGap)
	if err != nil {
		return GapStats{}, err
	}
	return GapStatistics(gaps), nil
}

// Duplicates returns duplicate groups in the range at the given threshold.
func (s *Service) Duplicates(ctx context.Context, start, end time.Time, threshold int) ([]DuplicateGroup, error) {
	activities, err := s.snapshot(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return DetectDuplicates(activities, threshold), nil
}

// Mergeable returns clusters of adjacent activities separated by gaps of
// at most maxGap. Merging itself is an explicit caller-side write.
func (s *Service) Mergeable(ctx context.Context, start, end time.Time, maxGap time.Duration) ([]MergeableGroup, error) {
	activities, err := s.snapshot(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return FindMergeableGroups(activities, maxGap), nil
}

// Orphans returns activities whose category no longer exists.
func (s *Service) Orphans(ctx context.Context, start, end time.Time) ([]storage.Activity, error) {
	activities, err := s.snapshot(ctx, start, end)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return FindOrphanedActivities(activities, categories), nil
}

// Validate runs batch validation over the range and splits the snapshot
// into valid and invalid activities.
func (s *Service) Validate(ctx context.Context, start, end time.Time) (BatchValidation, error) {
	activities, err := s.snapshot(ctx, start, end)
	if err != nil {
		return BatchValidation{}, err
	}

	batch := BatchValidation{
		Valid:   []ActivityValidation{},
		Invalid: []ActivityValidation{},
	}

	results := ValidateBatch(activities)
	for _, a := range activities {
		r := results[a.ID]
		av := ActivityValidation{Activity: a, Errors: r.Errors, Warnings: r.Warnings}
		if r.IsValid {
			batch.Valid = append(batch.Valid, av)
		} else {
			batch.Invalid = append(batch.Invalid, av)
		}
	}

	return batch, nil
}

// Recalculate rewrites stored durations that drifted more than one second
// from their timestamps. Activities without both timestamps are skipped.
// Failures are collected per activity and never abort the pass.
func (s *Service) Recalculate(ctx context.Context, start, end time.Time) (RecalcResult, error) {
	activities, err := s.snapshot(ctx, start, end)
	if err != nil {
		return RecalcResult{Errors: []string{}}, err
	}

	result := RecalcResult{Success: true, Errors: []string{}}

	for i := range activities {
		a := &activities[i]
		if a.EndTime == nil || a.EndTime.Before(a.StartTime) {
			continue
		}

		calculated := int64(a.EndTime.Sub(a.StartTime) / time.Second)
		if a.DurationSeconds != nil {
			drift := calculated - *a.DurationSeconds
			if drift < 0 {
				drift = -drift
			}
			if drift <= 1 {
				continue
			}
		}

		updated, err := s.store.UpdateActivity(ctx, a.ID, storage.ActivityUpdate{
			DurationSeconds: &calculated,
		})
		if err != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("activity %s: %v", a.ID, err))
			continue
		}
		if updated {
			result.Recalculated++
		}
	}

	return result, nil
}

// ZeroDuration returns activities with a stored duration under one second
// and, when remove is confirmed, bulk-deletes them in a single store
// transaction.
func (s *Service) ZeroDuration(ctx context.Context, start, end time.Time, remove bool) (ZeroDurationResult, error) {
	activities, err := s.snapshot(ctx, start, end)
	if err != nil {
		return ZeroDurationResult{}, err
	}

	result := ZeroDurationResult{Activities: FindZeroDuration(activities)}

	if remove && len(result.Activities) > 0 {
		ids := make([]string, len(result.Activities))
		for i, a := range result.Activities {
			ids[i] = a.ID
		}
		removed, err := s.store.BulkDelete(ctx, ids)
		if err != nil {
			return result, fmt.Errorf("delete zero-duration activities: %w", err)
		}
		result.Removed = removed
	}

	return result, nil
}

// Report builds the combined quality report for the range from one
// snapshot and one category fetch.
func (s *Service) Report(ctx context.Context, start, end time.Time) (QualityReport, error) {
	activities, err := s.snapshot(ctx, start, end)
	if err != nil {
		return QualityReport{}, err
	}
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return QualityReport{}, fmt.Errorf("fetch categories: %w", err)
	}
	return BuildQualityReport(activities, categories), nil
}
