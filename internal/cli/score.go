package cli

import (
	"context"
	"fmt"

	"github.com/veldrin/timesieve/internal/analytics"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for ScoreCommand.
func (c *ScoreCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals.Config)
	if err != nil {
		return err
	}
	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, analytics.Options{
		Location:          cfg.Location(),
		InsightWindowDays: cfg.Analytics.InsightWindowDays,
		StreakWindowDays:  cfg.Analytics.StreakWindowDays,
	})
}

func (c *ScoreCommand) executeWithStore(store storage.Store, opts analytics.Options) error {
	svc := analytics.NewService(store, opts)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(summary)
	}

	fmt.Println("Productivity Summary")
	fmt.Println("====================")
	fmt.Printf("Score:            %d/100\n", summary.ProductivityScore)
	fmt.Printf("Daily average:    %.0fm\n", summary.DailyAvgMinutes)
	fmt.Printf("Focus completion: %.0f%%\n", summary.FocusCompletionRate)
	fmt.Printf("Daily focus:      %.1fh\n", summary.AvgDailyFocusHours)
	fmt.Printf("Tracking streak:  %d days\n", summary.WeeklyStreak)
	fmt.Printf("Goal streak:      %d days (best %d)\n", summary.GoalStreak.Current, summary.GoalStreak.Longest)
	fmt.Printf("Peak hour:        %02d:00\n", summary.PeakHour)
	fmt.Printf("Best day:         %s\n", summary.MostProductiveDay)
	return nil
}
