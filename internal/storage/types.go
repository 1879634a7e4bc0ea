package storage

import "time"

// SourceType identifies which capture path produced an activity.
type SourceType string

const (
	// SourceManual is a time entry the user typed in.
	SourceManual SourceType = "manual"
	// SourceAutomatic is application/browser usage captured by the tracker.
	SourceAutomatic SourceType = "automatic"
	// SourcePomodoro is a focus or break session from the pomodoro timer.
	SourcePomodoro SourceType = "pomodoro"
)

// Valid reports whether s is one of the known source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceManual, SourceAutomatic, SourcePomodoro:
		return true
	}
	return false
}

// Pomodoro session kinds.
const (
	SessionFocus = "focus"
	SessionBreak = "break"
)

// Activity is one normalized interval of tracked time, tagged with its
// capture source. EndTime and DurationSeconds are both optional: live
// capture writes open intervals, and imports sometimes carry only one of
// the two. When both are present they should agree within one second;
// drift is a data-quality finding, not a fatal error.
type Activity struct {
	ID              string     `json:"id"`
	SourceType      SourceType `json:"source_type"`
	Title           string     `json:"title"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	CategoryID      string     `json:"category_id,omitempty"`
	AppName         string     `json:"app_name,omitempty"`
	Domain          string     `json:"domain,omitempty"`
	URL             string     `json:"url,omitempty"`
	IsIdle          bool       `json:"is_idle"`
	IsBrowser       bool       `json:"is_browser"`

	// Pomodoro-only fields.
	SessionKind string `json:"session_kind,omitempty"`
	Completed   bool   `json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveEnd returns the end of the activity's interval: EndTime when
// stored, otherwise StartTime plus the stored duration. The second return
// is false when neither is available (open interval).
func (a *Activity) EffectiveEnd() (time.Time, bool) {
	if a.EndTime != nil {
		return *a.EndTime, true
	}
	if a.DurationSeconds != nil {
		return a.StartTime.Add(time.Duration(*a.DurationSeconds) * time.Second), true
	}
	return time.Time{}, false
}

// Seconds returns the tracked length of the activity in seconds, preferring
// the stored duration over the timestamp difference. Open intervals count
// as zero.
func (a *Activity) Seconds() int64 {
	if a.DurationSeconds != nil {
		return *a.DurationSeconds
	}
	if a.EndTime != nil {
		return int64(a.EndTime.Sub(a.StartTime) / time.Second)
	}
	return 0
}

// Category groups activities for reporting and goals.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Goal is a daily target in minutes. An empty CategoryID means the goal
// counts minutes across all categories.
type Goal struct {
	ID            string `json:"id"`
	CategoryID    string `json:"category_id,omitempty"`
	TargetMinutes int    `json:"target_minutes"`
	Active        bool   `json:"active"`
}

// ActivityQuery defines range filters for listing activities. Results are
// always ordered ascending by start time.
type ActivityQuery struct {
	Start      time.Time
	End        time.Time
	SourceType SourceType // empty = all sources
	Limit      int
	Offset     int
}

// ActivityUpdate carries the mutable fields of an activity. Nil pointers
// leave the stored value untouched.
type ActivityUpdate struct {
	Title           *string
	EndTime         *time.Time
	DurationSeconds *int64
	CategoryID      *string
}

// Stats holds aggregate statistics about the timesieve database.
type Stats struct {
	TotalActivities   int64
	OldestActivity    time.Time
	NewestActivity    time.Time
	DatabaseSizeBytes int64
	BySource          []SourceCount
}

// SourceCount pairs a source type with its activity count.
type SourceCount struct {
	Source SourceType
	Count  int64
}
