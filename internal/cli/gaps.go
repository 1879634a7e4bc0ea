package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/veldrin/timesieve/internal/quality"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for GapsCommand.
func (c *GapsCommand) Execute(args []string) error {
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

	return c.executeWithStore(store)
}

func (c *GapsCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	svc := quality.NewService(store)

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}
	minGap := time.Duration(c.MinGap) * time.Minute

	if c.Stats {
		stats, err := svc.GapStats(ctx, start, end, minGap)
		if err != nil {
			return err
		}
		if c.globals != nil && c.globals.JSON {
			return printJSON(stats)
		}
		fmt.Printf("Gap Statistics (%s, min gap %dm)\n", rangeLabel(start, end), c.MinGap)
		fmt.Printf("Gaps:            %d\n", stats.TotalGaps)
		fmt.Printf("Untracked:       %s\n", formatSeconds(stats.TotalUntrackedSeconds))
		fmt.Printf("Average gap:     %s\n", formatSeconds(int64(stats.AverageGapSeconds)))
		fmt.Printf("Longest gap:     %s\n", formatSeconds(stats.LongestGapSeconds))
		return nil
	}

	gaps, err := svc.Gaps(ctx, start, end, minGap)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"gaps": gaps, "count": len(gaps)})
	}

	if len(gaps) == 0 {
		fmt.Printf("No gaps of %dm or more (%s)\n", c.MinGap, rangeLabel(start, end))
		return nil
	}
	fmt.Printf("Untracked gaps (%s):\n", rangeLabel(start, end))
	for _, g := range gaps {
		fmt.Printf("  %s -> %s  (%s)\n",
			g.StartTime.Local().Format("2006-01-02 15:04"),
			g.EndTime.Local().Format("15:04"),
			formatSeconds(g.DurationSeconds))
	}
	return nil
}
