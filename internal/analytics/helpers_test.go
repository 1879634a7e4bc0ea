package analytics

import (
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// 2026-03-09 is a Monday; the containing week starts Sunday 2026-03-08.
var testBase = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

func closed(a storage.Activity, start time.Time, minutes int) storage.Activity {
	end := start.Add(time.Duration(minutes) * time.Minute)
	dur := int64(minutes) * 60
	a.StartTime = start
	a.EndTime = &end
	a.DurationSeconds = &dur
	return a
}

func manualEntry(start time.Time, minutes int, category string) storage.Activity {
	return closed(storage.Activity{
		ID:         "m-" + start.Format(time.RFC3339),
		SourceType: storage.SourceManual,
		Title:      "entry",
		CategoryID: category,
	}, start, minutes)
}

func autoUsage(start time.Time, minutes int, app string, idle, browser bool) storage.Activity {
	return closed(storage.Activity{
		ID:         "a-" + app + start.Format(time.RFC3339),
		SourceType: storage.SourceAutomatic,
		Title:      app,
		AppName:    app,
		IsIdle:     idle,
		IsBrowser:  browser,
	}, start, minutes)
}

func pomodoro(start time.Time, minutes int, kind string, completed bool) storage.Activity {
	return closed(storage.Activity{
		ID:          "p-" + kind + start.Format(time.RFC3339),
		SourceType:  storage.SourcePomodoro,
		Title:       "session",
		SessionKind: kind,
		Completed:   completed,
	}, start, minutes)
}
