package analytics

import (
	"sort"
	"time"
)

// CalculateStreak computes the current and longest run of consecutive
// calendar days over a set of qualifying dates (YYYY-MM-DD keys).
// "Current" walks back from the most recent qualifying date; any missing
// day breaks it. "Longest" is the best run anywhere in the set, not only
// the trailing one. The same primitive serves activity streaks and
// goal-achievement streaks.
func CalculateStreak(dates map[string]bool) Streak {
	if len(dates) == 0 {
		return Streak{}
	}

	days := make([]time.Time, 0, len(dates))
	for key, ok := range dates {
		if !ok {
			continue
		}
		if t, err := time.Parse(dateLayout, key); err == nil {
			days = append(days, t)
		}
	}
	if len(days) == 0 {
		return Streak{}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var streak Streak
	run := 1
	longest := 1

	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	streak.Longest = longest

	// Trailing run ending at the most recent qualifying date.
	current := 1
	for i := len(days) - 1; i > 0; i-- {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			break
		}
		current++
	}
	streak.Current = current

	return streak
}
