package cli

import (
	"context"
	"fmt"

	"github.com/veldrin/timesieve/internal/quality"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for QualityCommand.
func (c *QualityCommand) Execute(args []string) error {
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

func (c *QualityCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	svc := quality.NewService(store)

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}

	if c.Orphans {
		orphans, err := svc.Orphans(ctx, start, end)
		if err != nil {
			return err
		}
		if c.globals != nil && c.globals.JSON {
			return printJSON(map[string]any{"orphans": orphans, "count": len(orphans)})
		}
		if len(orphans) == 0 {
			fmt.Printf("No orphaned activities (%s)\n", rangeLabel(start, end))
			return nil
		}
		fmt.Printf("Orphaned activities (%s):\n", rangeLabel(start, end))
		for _, a := range orphans {
			fmt.Printf("  %s  %-30q category=%s\n", a.StartTime.Local().Format("2006-01-02 15:04"), a.Title, a.CategoryID)
		}
		return nil
	}

	report, err := svc.Report(ctx, start, end)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(report)
	}

	fmt.Printf("Data Quality Report (%s)\n", rangeLabel(start, end))
	fmt.Println("===================")
	fmt.Printf("Activities:       %d\n", report.TotalActivities)
	fmt.Printf("Valid:            %d\n", report.ValidActivities)
	fmt.Printf("Invalid:          %d\n", report.InvalidActivities)
	fmt.Printf("Warnings:         %d\n", report.WarningsCount)
	fmt.Printf("Orphaned:         %d\n", report.OrphanedCount)
	fmt.Printf("Zero-duration:    %d\n", report.ZeroDurationCount)
	fmt.Printf("Gaps:             %d\n", report.GapsCount)
	fmt.Printf("Duplicate groups: %d\n", report.DuplicateGroupsCount)
	fmt.Println()
	fmt.Printf("Quality score:    %d/100\n", report.QualityScore)
	return nil
}
