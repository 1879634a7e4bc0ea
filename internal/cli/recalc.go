package cli

import (
	"context"
	"fmt"

	"github.com/veldrin/timesieve/internal/quality"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for RecalcCommand.
func (c *RecalcCommand) Execute(args []string) error {
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

func (c *RecalcCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	svc := quality.NewService(store)

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}

	result, err := svc.Recalculate(ctx, start, end)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(result)
	}

	fmt.Printf("Recalculated %d durations (%s)\n", result.Recalculated, rangeLabel(start, end))
	for _, e := range result.Errors {
		fmt.Printf("  failed: %s\n", e)
	}
	if !result.Success {
		return fmt.Errorf("%d updates failed", len(result.Errors))
	}
	return nil
}
