package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldrin/timesieve/internal/storage"
)

func TestSimilarity_IdenticalActivities(t *testing.T) {
	a := interval(testBase, 0, 30, storage.SourceManual)
	a.Title = "Standup"
	a.AppName = "Zoom"
	a.CategoryID = "cat-meetings"
	b := a
	b.ID = "other"

	// Full overlap 50 + title 20 + app 15 + category 15.
	assert.Equal(t, 100, Similarity(&a, &b))
}

func TestSimilarity_DisjointRanges(t *testing.T) {
	a := interval(testBase, 0, 30, storage.SourceManual)
	b := interval(testBase, 60, 90, storage.SourceManual)
	a.Title = "x"
	b.Title = "y"

	assert.Equal(t, 0, Similarity(&a, &b))
}

func TestSimilarity_EmptyFieldsNeverMatch(t *testing.T) {
	a := interval(testBase, 0, 30, storage.SourceManual)
	b := interval(testBase, 0, 30, storage.SourceAutomatic)
	a.Title, b.Title = "", ""
	a.AppName, b.AppName = "", ""
	a.CategoryID, b.CategoryID = "", ""

	// Only the overlap half contributes.
	assert.Equal(t, 50, Similarity(&a, &b))
}

func TestSimilarity_PartialOverlap(t *testing.T) {
	// 30 minute ranges overlapping for 15: overlap/union = 15/45.
	a := interval(testBase, 0, 30, storage.SourceManual)
	b := interval(testBase, 15, 45, storage.SourceManual)
	a.Title = "x"
	b.Title = "y"

	assert.Equal(t, 17, Similarity(&a, &b)) // round(15/45*50)
}

func TestSimilarity_PointRanges(t *testing.T) {
	a := storage.Activity{ID: "a", SourceType: storage.SourceManual, StartTime: testBase}
	b := storage.Activity{ID: "b", SourceType: storage.SourceManual, StartTime: testBase}
	zero := int64(0)
	a.DurationSeconds = &zero
	b.DurationSeconds = &zero

	assert.Equal(t, 50, Similarity(&a, &b))

	c := b
	c.StartTime = testBase.Add(time.Minute)
	assert.Equal(t, 0, Similarity(&a, &c))
}

func TestDetectDuplicates_GroupsAndThreshold(t *testing.T) {
	dup1 := interval(testBase, 0, 30, storage.SourceManual)
	dup1.Title = "Standup"
	dup1.AppName = "Zoom"
	dup2 := interval(testBase, 0, 30, storage.SourceAutomatic)
	dup2.ID = "dup2"
	dup2.Title = "Standup"
	dup2.AppName = "Zoom"
	unrelated := interval(testBase, 120, 150, storage.SourceManual)
	unrelated.ID = "solo"

	groups := DetectDuplicates([]storage.Activity{dup1, dup2, unrelated}, 80)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Activities, 2)
	assert.Equal(t, 85, groups[0].Similarity) // 50 overlap + 20 title + 15 app
}

func TestDetectDuplicates_BelowThresholdExcluded(t *testing.T) {
	a := interval(testBase, 0, 30, storage.SourceManual)
	a.Title = "Standup"
	b := interval(testBase, 0, 30, storage.SourceAutomatic)
	b.ID = "b"
	b.Title = "Standup"

	// 50 + 20 = 70.
	assert.Empty(t, DetectDuplicates([]storage.Activity{a, b}, 80))
	groups := DetectDuplicates([]storage.Activity{a, b}, 70)
	require.Len(t, groups, 1)
	assert.Equal(t, 70, groups[0].Similarity)
}

func TestDetectDuplicates_EachActivityInOneGroup(t *testing.T) {
	// Three mutual duplicates collapse into a single group.
	var activities []storage.Activity
	for _, id := range []string{"a", "b", "c"} {
		a := interval(testBase, 0, 30, storage.SourceManual)
		a.ID = id
		a.Title = "Standup"
		a.AppName = "Zoom"
		activities = append(activities, a)
	}

	groups := DetectDuplicates(activities, 80)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Activities, 3)

	// Repeated passes over the same snapshot are identical.
	again := DetectDuplicates(activities, 80)
	assert.Equal(t, groups, again)
}
