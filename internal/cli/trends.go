package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/veldrin/timesieve/internal/analytics"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for TrendsCommand.
func (c *TrendsCommand) Execute(args []string) error {
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

func (c *TrendsCommand) executeWithStore(store storage.Store, loc *time.Location) error {
	if !analytics.ValidGroupBy(c.GroupBy) {
		return fmt.Errorf("invalid --group-by %q (use day, week, or month)", c.GroupBy)
	}

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	if end.IsZero() {
		end = now
	} else {
		end = end.AddDate(0, 0, -1)
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -29)
	}

	svc := analytics.NewService(store, analytics.Options{Location: loc})
	points, err := svc.Trends(context.Background(), start, end, c.GroupBy)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"group_by": c.GroupBy, "points": points})
	}

	if len(points) == 0 {
		fmt.Println("No tracked time in range")
		return nil
	}

	max := 0
	for _, p := range points {
		if p.Minutes > max {
			max = p.Minutes
		}
	}
	fmt.Printf("Tracked minutes per %s\n", c.GroupBy)
	for _, p := range points {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("#", p.Minutes*40/max)
		}
		fmt.Printf("  %-10s %6s  %s\n", p.Period, formatMinutes(p.Minutes), bar)
	}
	return nil
}
