package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veldrin/timesieve/internal/storage"
)

var testCategories = []storage.Category{
	{ID: "cat-work", Name: "Work"},
	{ID: "cat-meetings", Name: "Meetings"},
}

func TestBuildQualityReport_EmptySnapshot(t *testing.T) {
	report := BuildQualityReport(nil, testCategories)

	assert.Zero(t, report.TotalActivities)
	assert.Equal(t, 100, report.QualityScore)
}

func TestBuildQualityReport_CountsAndScore(t *testing.T) {
	activities := []storage.Activity{
		interval(testBase, 0, 30, storage.SourceManual),
		interval(testBase, 60, 90, storage.SourceManual),
	}
	// One invalid record: no start time.
	activities = append(activities, storage.Activity{ID: "bad", SourceType: storage.SourceManual})
	// One orphan.
	orphan := interval(testBase, 120, 150, storage.SourceManual)
	orphan.ID = "orphan"
	orphan.CategoryID = "cat-gone"
	activities = append(activities, orphan)

	report := BuildQualityReport(activities, testCategories)

	assert.Equal(t, 4, report.TotalActivities)
	assert.Equal(t, 3, report.ValidActivities)
	assert.Equal(t, 1, report.InvalidActivities)
	assert.Equal(t, 1, report.OrphanedCount)
	assert.Zero(t, report.ZeroDurationCount)
	// 2 disqualified of 4: 100 - 50.
	assert.Equal(t, 50, report.QualityScore)
}

func TestBuildQualityReport_GapThreshold(t *testing.T) {
	// A 6-minute break between entries counts against DefaultReportMinGap.
	wide := []storage.Activity{
		interval(testBase, 0, 30, storage.SourceManual),
		interval(testBase, 36, 60, storage.SourceManual),
	}
	assert.Equal(t, 1, BuildQualityReport(wide, testCategories).GapsCount)

	// A 4-minute break is under the threshold.
	narrow := []storage.Activity{
		interval(testBase, 0, 30, storage.SourceManual),
		interval(testBase, 34, 60, storage.SourceManual),
	}
	assert.Zero(t, BuildQualityReport(narrow, testCategories).GapsCount)
}

func TestBuildQualityReport_ScoreBounds(t *testing.T) {
	// Every record disqualified floors at 0, never below.
	var activities []storage.Activity
	for i := 0; i < 3; i++ {
		a := storage.Activity{ID: string(rune('a' + i)), SourceType: storage.SourceManual}
		activities = append(activities, a)
	}

	report := BuildQualityReport(activities, testCategories)
	assert.Equal(t, 0, report.QualityScore)
}

func TestBuildQualityReport_AddingBadRecordNeverRaisesScore(t *testing.T) {
	activities := []storage.Activity{
		interval(testBase, 0, 30, storage.SourceManual),
		interval(testBase, 31, 60, storage.SourceManual),
	}
	before := BuildQualityReport(activities, testCategories).QualityScore

	zero := int64(0)
	bad := interval(testBase, 61, 61, storage.SourceManual)
	bad.ID = "zero"
	bad.DurationSeconds = &zero
	after := BuildQualityReport(append(activities, bad), testCategories).QualityScore

	assert.LessOrEqual(t, after, before)
}
