package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldrin/timesieve/internal/storage"
)

func TestValidateActivity_Valid(t *testing.T) {
	a := interval(testBase, 0, 30, storage.SourceManual)
	r := ValidateActivity(&a, testBase.Add(time.Hour))

	assert.True(t, r.IsValid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestValidateActivity_Errors(t *testing.T) {
	now := testBase.Add(time.Hour)

	missing := storage.Activity{SourceType: "nonsense"}
	r := ValidateActivity(&missing, now)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "missing id")
	assert.Contains(t, r.Errors, `unknown source type "nonsense"`)
	assert.Contains(t, r.Errors, "missing start time")

	backwards := interval(testBase, 30, 30, storage.SourceManual)
	before := testBase
	backwards.EndTime = &before
	r = ValidateActivity(&backwards, now)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "end time before start time")

	negative := interval(testBase, 0, 30, storage.SourceManual)
	neg := int64(-60)
	negative.DurationSeconds = &neg
	r = ValidateActivity(&negative, now)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "negative duration")
}

func TestValidateActivity_Warnings(t *testing.T) {
	now := testBase.Add(time.Hour)

	open := storage.Activity{ID: "a", SourceType: storage.SourceAutomatic, StartTime: testBase}
	r := ValidateActivity(&open, now)
	assert.True(t, r.IsValid)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "open interval")

	future := interval(testBase, 120, 150, storage.SourceManual)
	r = ValidateActivity(&future, now)
	assert.True(t, r.IsValid)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "future")
}

func TestValidateActivity_DurationDrift(t *testing.T) {
	now := testBase.Add(time.Hour)

	// One second of drift is tolerated.
	a := interval(testBase, 0, 30, storage.SourceManual)
	slight := int64(1799)
	a.DurationSeconds = &slight
	r := ValidateActivity(&a, now)
	assert.Empty(t, r.Warnings)

	// Two seconds is not.
	drifted := int64(1798)
	a.DurationSeconds = &drifted
	r = ValidateActivity(&a, now)
	assert.True(t, r.IsValid)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "differs from timestamps")
}

func TestValidateBatch_OneResultPerActivity(t *testing.T) {
	a := interval(testBase, 0, 30, storage.SourceManual)
	b := interval(testBase, 40, 70, storage.SourceAutomatic)
	b.ID = "b"
	bad := storage.Activity{ID: "bad", SourceType: storage.SourceManual}

	results := ValidateBatch([]storage.Activity{a, b, bad})
	require.Len(t, results, 3)
	assert.True(t, results[a.ID].IsValid)
	assert.True(t, results["b"].IsValid)
	assert.False(t, results["bad"].IsValid)
}
