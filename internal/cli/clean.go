package cli

import (
	"context"
	"fmt"

	"github.com/veldrin/timesieve/internal/quality"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for CleanCommand.
func (c *CleanCommand) Execute(args []string) error {
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

func (c *CleanCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	svc := quality.NewService(store)

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}

	result, err := svc.ZeroDuration(ctx, start, end, c.Confirm)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(result)
	}

	if len(result.Activities) == 0 {
		fmt.Printf("No zero-duration activities (%s)\n", rangeLabel(start, end))
		return nil
	}

	fmt.Printf("Zero-duration activities (%s):\n", rangeLabel(start, end))
	for _, a := range result.Activities {
		fmt.Printf("  [%s] %s  %q\n", a.SourceType, a.StartTime.Local().Format("2006-01-02 15:04"), a.Title)
	}
	if c.Confirm {
		fmt.Printf("\nDeleted %d activities\n", result.Removed)
	} else {
		fmt.Println("\nRun again with --confirm to delete them")
	}
	return nil
}
