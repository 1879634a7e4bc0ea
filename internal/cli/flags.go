package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// rangeFlags are the shared date-range filters. Dates are inclusive.
type rangeFlags struct {
	Start string `long:"start" description:"Range start date (YYYY-MM-DD)"`
	End   string `long:"end" description:"Range end date (YYYY-MM-DD), inclusive"`
}

// StatusCommand — show database health and per-source counts.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// AddCommand — record a manual activity entry.
type AddCommand struct {
	Title    string `long:"title" description:"Activity title (required)"`
	Start    string `long:"start" description:"Start time (RFC3339 or YYYY-MM-DD HH:MM); defaults to now"`
	Minutes  int    `long:"minutes" description:"Duration in minutes"`
	Category string `long:"category" description:"Category ID"`
	App      string `long:"app" description:"Application name"`

	globals *GlobalFlags
	version string
}

// QualityCommand — full data quality report, or just the orphan scan.
type QualityCommand struct {
	rangeFlags
	Orphans bool `long:"orphans" description:"Only list activities with unknown categories"`

	globals *GlobalFlags
	version string
}

// GapsCommand — detect untracked gaps between consecutive activities.
type GapsCommand struct {
	rangeFlags
	MinGap int  `long:"min-gap" description:"Minimum gap in minutes to report" default:"5"`
	Stats  bool `long:"stats" description:"Print gap statistics instead of the gap list"`

	globals *GlobalFlags
	version string
}

// DuplicatesCommand — find groups of overlapping near-identical activities.
type DuplicatesCommand struct {
	rangeFlags
	Threshold int `long:"threshold" description:"Similarity threshold 0-100" default:"80"`

	globals *GlobalFlags
	version string
}

// MergeableCommand — find clusters of activities close enough to merge.
type MergeableCommand struct {
	rangeFlags
	MaxGap int `long:"max-gap" description:"Maximum gap in seconds within a cluster" default:"300"`

	globals *GlobalFlags
	version string
}

// ValidateCommand — run field validation over the stored activities.
type ValidateCommand struct {
	rangeFlags

	globals *GlobalFlags
	version string
}

// RecalcCommand — recompute stored durations from the activity intervals.
type RecalcCommand struct {
	rangeFlags

	globals *GlobalFlags
	version string
}

// CleanCommand — list zero-duration activities, deleting them when confirmed.
type CleanCommand struct {
	rangeFlags
	Confirm bool `long:"confirm" description:"Actually delete the listed activities"`

	globals *GlobalFlags
	version string
}

// StatsCommand — daily statistics, or the hour-of-day pattern.
type StatsCommand struct {
	rangeFlags
	Hourly bool `long:"hourly" description:"Show the hour-of-day pattern instead of daily stats"`
	Days   int  `long:"days" description:"Days of history for the hourly pattern" default:"14"`

	globals *GlobalFlags
	version string
}

// WeeklyCommand — weekly summary with goals and insights.
type WeeklyCommand struct {
	Offset int `long:"offset" description:"Weeks back from the current week" default:"0"`

	globals *GlobalFlags
	version string
}

// HeatmapCommand — activity heatmap for a calendar year.
type HeatmapCommand struct {
	Year int `long:"year" description:"Calendar year (defaults to the current year)"`

	globals *GlobalFlags
	version string
}

// TrendsCommand — combined minutes per day, week, or month bucket.
type TrendsCommand struct {
	rangeFlags
	GroupBy string `long:"group-by" description:"Bucket size: day | week | month" default:"day"`

	globals *GlobalFlags
	version string
}

// InsightsCommand — behavioral findings over the configured insight window.
type InsightsCommand struct {
	globals *GlobalFlags
	version string
}

// ScoreCommand — productivity score and its inputs.
type ScoreCommand struct {
	globals *GlobalFlags
	version string
}

// ServeCommand — run the local HTTP API server.
type ServeCommand struct {
	Port int `long:"port" description:"Override server port"`

	globals *GlobalFlags
	version string
}
