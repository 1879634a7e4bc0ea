package quality

import (
	"math"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// DefaultReportMinGap is the smallest untracked stretch the report counts
// as a gap.
const DefaultReportMinGap = 5 * time.Minute

// QualityReport is the combined data-quality assessment of one snapshot.
type QualityReport struct {
	TotalActivities      int `json:"total_activities"`
	ValidActivities      int `json:"valid_activities"`
	InvalidActivities    int `json:"invalid_activities"`
	WarningsCount        int `json:"warnings_count"`
	OrphanedCount        int `json:"orphaned_count"`
	ZeroDurationCount    int `json:"zero_duration_count"`
	GapsCount            int `json:"gaps_count"`
	DuplicateGroupsCount int `json:"duplicate_groups_count"`
	QualityScore         int `json:"quality_score"`
}

// BuildQualityReport runs validation, the orphan and zero-duration scans,
// duplicate detection at the default threshold, and gap detection at the
// default report gap against a single snapshot. An empty snapshot scores a
// perfect 100; otherwise the score falls with the share of invalid,
// orphaned, and zero-duration activities, floored at 0. Adding a
// disqualifying activity can never raise the score.
func BuildQualityReport(activities []storage.Activity, categories []storage.Category) QualityReport {
	report := QualityReport{TotalActivities: len(activities)}

	results := ValidateBatch(activities)
	for _, r := range results {
		if r.IsValid {
			report.ValidActivities++
		} else {
			report.InvalidActivities++
		}
		report.WarningsCount += len(r.Warnings)
	}

	report.OrphanedCount = len(FindOrphanedActivities(activities, categories))
	report.ZeroDurationCount = len(FindZeroDuration(activities))
	report.GapsCount = len(DetectGaps(activities, DefaultReportMinGap))
	report.DuplicateGroupsCount = len(DetectDuplicates(activities, DefaultSimilarityThreshold))

	if report.TotalActivities == 0 {
		report.QualityScore = 100
		return report
	}

	disqualified := report.InvalidActivities + report.OrphanedCount + report.ZeroDurationCount
	score := 100 - math.Round(float64(disqualified)/float64(report.TotalActivities)*100)
	if score < 0 {
		score = 0
	}
	report.QualityScore = int(score)

	return report
}
