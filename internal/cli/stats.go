package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/veldrin/timesieve/internal/analytics"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
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

func (c *StatsCommand) executeWithStore(store storage.Store, loc *time.Location) error {
	ctx := context.Background()
	svc := analytics.NewService(store, analytics.Options{Location: loc})

	if c.Hourly {
		patterns, err := svc.Hourly(ctx, c.Days)
		if err != nil {
			return err
		}
		if c.globals != nil && c.globals.JSON {
			return printJSON(map[string]any{"hours": patterns})
		}
		fmt.Printf("Hour-of-day pattern (last %d days)\n", c.Days)
		max := 0.0
		for _, p := range patterns {
			if p.AvgMinutes > max {
				max = p.AvgMinutes
			}
		}
		for _, p := range patterns {
			bar := ""
			if max > 0 {
				bar = strings.Repeat("#", int(p.AvgMinutes/max*40))
			}
			fmt.Printf("  %02d:00  %6.1fm  %s\n", p.Hour, p.AvgMinutes, bar)
		}
		return nil
	}

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	if end.IsZero() {
		end = now
	} else {
		end = end.AddDate(0, 0, -1) // resolveRange made it exclusive
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -6)
	}

	days, err := svc.Daily(ctx, start, end)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"days": days})
	}

	fmt.Println("Daily Statistics")
	fmt.Println("================")
	for _, d := range days {
		fmt.Printf("\n%s\n", d.Date)
		fmt.Printf("  Tracked:  %s\n", formatMinutes(d.TotalMinutes))
		fmt.Printf("  Focus:    %s\n", formatMinutes(d.FocusMinutes))
		fmt.Printf("  Breaks:   %s\n", formatMinutes(d.BreakMinutes))
		fmt.Printf("  Idle:     %s\n", formatMinutes(d.IdleMinutes))
		fmt.Printf("  Tasks:    %d\n", d.CompletedTasks)
		for _, cat := range d.TopCategories {
			fmt.Printf("    %-20s %s (%.0f%%)\n", cat.Name, formatMinutes(cat.Minutes), cat.Percentage)
		}
	}
	return nil
}
