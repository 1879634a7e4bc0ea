package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStreak_Empty(t *testing.T) {
	assert.Equal(t, Streak{}, CalculateStreak(nil))
	assert.Equal(t, Streak{}, CalculateStreak(map[string]bool{}))
	assert.Equal(t, Streak{}, CalculateStreak(map[string]bool{"2026-03-10": false}))
}

func TestCalculateStreak_SingleDay(t *testing.T) {
	streak := CalculateStreak(map[string]bool{"2026-03-10": true})
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, 1, streak.Longest)
}

func TestCalculateStreak_GapBreaksCurrent(t *testing.T) {
	// Three trailing days, a hole, then one earlier day.
	dates := map[string]bool{
		"2026-03-10": true,
		"2026-03-09": true,
		"2026-03-08": true,
		"2026-03-06": true,
	}
	streak := CalculateStreak(dates)
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
}

func TestCalculateStreak_LongestNotTrailing(t *testing.T) {
	// Five-day run early, two-day run at the end.
	dates := map[string]bool{
		"2026-03-01": true,
		"2026-03-02": true,
		"2026-03-03": true,
		"2026-03-04": true,
		"2026-03-05": true,
		"2026-03-09": true,
		"2026-03-10": true,
	}
	streak := CalculateStreak(dates)
	assert.Equal(t, 2, streak.Current)
	assert.Equal(t, 5, streak.Longest)
}

func TestCalculateStreak_MonthBoundary(t *testing.T) {
	dates := map[string]bool{
		"2026-02-27": true,
		"2026-02-28": true,
		"2026-03-01": true,
	}
	streak := CalculateStreak(dates)
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
}
