package quality

import (
	"fmt"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// DurationTolerance is the allowed drift between a stored duration and the
// timestamp difference before it becomes a validation warning.
const DurationTolerance = time.Second

// ValidationResult holds the outcome of validating one activity. IsValid
// is false iff at least one structural error exists; warnings never block.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateActivity runs the structural and consistency checks for a single
// activity.
func ValidateActivity(a *storage.Activity, now time.Time) ValidationResult {
	var errs, warnings []string

	if a.ID == "" {
		errs = append(errs, "missing id")
	}
	if !a.SourceType.Valid() {
		errs = append(errs, fmt.Sprintf("unknown source type %q", a.SourceType))
	}
	if a.StartTime.IsZero() {
		errs = append(errs, "missing start time")
	}
	if a.EndTime != nil && a.EndTime.Before(a.StartTime) {
		errs = append(errs, "end time before start time")
	}
	if a.DurationSeconds != nil && *a.DurationSeconds < 0 {
		errs = append(errs, "negative duration")
	}

	if a.EndTime == nil && a.DurationSeconds == nil {
		warnings = append(warnings, "open interval: no end time and no duration")
	}
	if !a.StartTime.IsZero() && a.StartTime.After(now) {
		warnings = append(warnings, "start time is in the future")
	}
	if a.EndTime != nil && a.DurationSeconds != nil && *a.DurationSeconds >= 0 && !a.EndTime.Before(a.StartTime) {
		calculated := int64(a.EndTime.Sub(a.StartTime) / time.Second)
		drift := calculated - *a.DurationSeconds
		if drift < 0 {
			drift = -drift
		}
		if time.Duration(drift)*time.Second > DurationTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"stored duration %ds differs from timestamps by %ds", *a.DurationSeconds, drift))
		}
	}

	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// ValidateBatch validates every activity in the snapshot. Every activity
// receives exactly one result, keyed by ID. Gap, duplicate and orphan
// checks are separate concerns and do not affect validity here.
func ValidateBatch(activities []storage.Activity) map[string]ValidationResult {
	now := time.Now()
	results := make(map[string]ValidationResult, len(activities))
	for i := range activities {
		results[activities[i].ID] = ValidateActivity(&activities[i], now)
	}
	return results
}
