package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/veldrin/timesieve/internal/quality"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for MergeableCommand.
func (c *MergeableCommand) Execute(args []string) error {
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

func (c *MergeableCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	svc := quality.NewService(store)

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}

	groups, err := svc.Mergeable(ctx, start, end, time.Duration(c.MaxGap)*time.Second)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"groups": groups, "count": len(groups)})
	}

	if len(groups) == 0 {
		fmt.Printf("No mergeable clusters within %ds (%s)\n", c.MaxGap, rangeLabel(start, end))
		return nil
	}
	fmt.Printf("Mergeable clusters (%s):\n", rangeLabel(start, end))
	for i, g := range groups {
		fmt.Printf("Cluster %d (%d activities, %s idle between):\n", i+1, len(g.Activities), formatSeconds(g.TotalGapSeconds))
		for _, a := range g.Activities {
			fmt.Printf("  [%s] %s  %q\n", a.SourceType, a.StartTime.Local().Format("2006-01-02 15:04"), a.Title)
		}
	}
	return nil
}
