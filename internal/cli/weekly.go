package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/veldrin/timesieve/internal/analytics"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for WeeklyCommand.
func (c *WeeklyCommand) Execute(args []string) error {
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

	return c.executeWithStore(store, cfg.Location())
}

func (c *WeeklyCommand) executeWithStore(store storage.Store, loc *time.Location) error {
	svc := analytics.NewService(store, analytics.Options{Location: loc})

	summary, err := svc.Weekly(context.Background(), c.Offset)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(summary)
	}

	fmt.Printf("Week %s to %s\n", summary.WeekStart, summary.WeekEnd)
	fmt.Println("=======================")
	fmt.Printf("Tracked:        %s\n", formatMinutes(summary.TotalMinutes))
	fmt.Printf("Daily average:  %.0fm\n", summary.AvgDailyMinutes)
	if summary.TopDay != nil {
		fmt.Printf("Top day:        %s (%s, %s)\n", summary.TopDay.Weekday, summary.TopDay.Date, formatMinutes(summary.TopDay.Minutes))
	}
	fmt.Printf("Goals:          %d/%d\n", summary.GoalsAchieved, summary.TotalGoals)
	if summary.ComparisonToPrevious != 0 {
		fmt.Printf("vs last week:   %+d%%\n", summary.ComparisonToPrevious)
	}

	if len(summary.TopCategories) > 0 {
		fmt.Println()
		fmt.Println("Top Categories:")
		for _, cat := range summary.TopCategories {
			fmt.Printf("  %-20s %s (%.0f%%)\n", cat.Name, formatMinutes(cat.Minutes), cat.Percentage)
		}
	}

	if len(summary.Insights) > 0 {
		fmt.Println()
		for _, ins := range summary.Insights {
			fmt.Printf("* %s\n", ins)
		}
	}
	return nil
}
