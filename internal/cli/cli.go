package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Status     *StatusCommand
	Add        *AddCommand
	Quality    *QualityCommand
	Gaps       *GapsCommand
	Duplicates *DuplicatesCommand
	Mergeable  *MergeableCommand
	Validate   *ValidateCommand
	Recalc     *RecalcCommand
	Clean      *CleanCommand
	Stats      *StatsCommand
	Weekly     *WeeklyCommand
	Heatmap    *HeatmapCommand
	Trends     *TrendsCommand
	Insights   *InsightsCommand
	Score      *ScoreCommand
	Serve      *ServeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "timesieve"
	parser.LongDescription = "Reconcile and analyze time-usage signals from manual entries, automatic capture, and pomodoro sessions."

	cmds := &commands{
		Status:     &StatusCommand{globals: &globals, version: version},
		Add:        &AddCommand{globals: &globals, version: version},
		Quality:    &QualityCommand{globals: &globals, version: version},
		Gaps:       &GapsCommand{globals: &globals, version: version},
		Duplicates: &DuplicatesCommand{globals: &globals, version: version},
		Mergeable:  &MergeableCommand{globals: &globals, version: version},
		Validate:   &ValidateCommand{globals: &globals, version: version},
		Recalc:     &RecalcCommand{globals: &globals, version: version},
		Clean:      &CleanCommand{globals: &globals, version: version},
		Stats:      &StatsCommand{globals: &globals, version: version},
		Weekly:     &WeeklyCommand{globals: &globals, version: version},
		Heatmap:    &HeatmapCommand{globals: &globals, version: version},
		Trends:     &TrendsCommand{globals: &globals, version: version},
		Insights:   &InsightsCommand{globals: &globals, version: version},
		Score:      &ScoreCommand{globals: &globals, version: version},
		Serve:      &ServeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("status", "Show database health and statistics", "Show database health, per-source activity counts, and configuration summary.", cmds.Status)
	parser.AddCommand("add", "Record a manual activity entry", "Record a manual activity entry with a title, start time, and duration.", cmds.Add)
	parser.AddCommand("quality", "Run the data quality report", "Run the full data quality report, or scan for orphaned activities with --orphans.", cmds.Quality)
	parser.AddCommand("gaps", "Detect untracked gaps", "Detect untracked gaps between consecutive activities.", cmds.Gaps)
	parser.AddCommand("duplicates", "Detect duplicate activities", "Find groups of overlapping activities that look like duplicate records.", cmds.Duplicates)
	parser.AddCommand("mergeable", "Find mergeable activity clusters", "Find clusters of activities separated by small gaps.", cmds.Mergeable)
	parser.AddCommand("validate", "Validate stored activities", "Validate stored activities and report errors and warnings per record.", cmds.Validate)
	parser.AddCommand("recalc", "Recalculate stored durations", "Recompute stored durations from each activity's start and end times.", cmds.Recalc)
	parser.AddCommand("clean", "Remove zero-duration activities", "List zero-duration activities; delete them with --confirm.", cmds.Clean)
	parser.AddCommand("stats", "Show daily statistics", "Show per-day statistics, or the hour-of-day pattern with --hourly.", cmds.Stats)
	parser.AddCommand("weekly", "Show the weekly summary", "Show the weekly summary with goal progress and insights.", cmds.Weekly)
	parser.AddCommand("heatmap", "Show the yearly activity heatmap", "Show the activity heatmap for a calendar year.", cmds.Heatmap)
	parser.AddCommand("trends", "Show activity trends", "Show combined tracked minutes per day, week, or month.", cmds.Trends)
	parser.AddCommand("insights", "Show behavioral insights", "Show behavioral findings from recent activity.", cmds.Insights)
	parser.AddCommand("score", "Show the productivity score", "Show the productivity score and the numbers behind it.", cmds.Score)
	parser.AddCommand("serve", "Run the HTTP API server", "Run the local HTTP API server exposing the quality and analytics operations.", cmds.Serve)

	return parser, &globals, cmds
}

// Run is the main entry point for the timesieve CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("timesieve %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
