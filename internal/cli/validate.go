package cli

import (
	"context"
	"fmt"

	"github.com/veldrin/timesieve/internal/quality"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for ValidateCommand.
func (c *ValidateCommand) Execute(args []string) error {
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

func (c *ValidateCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	svc := quality.NewService(store)

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}

	batch, err := svc.Validate(ctx, start, end)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(batch)
	}

	total := len(batch.Valid) + len(batch.Invalid)
	fmt.Printf("Validated %d activities (%s): %d valid, %d invalid\n",
		total, rangeLabel(start, end), len(batch.Valid), len(batch.Invalid))

	for _, v := range batch.Invalid {
		fmt.Printf("\n%s  %q\n", v.Activity.ID, v.Activity.Title)
		for _, e := range v.Errors {
			fmt.Printf("  error:   %s\n", e)
		}
		for _, w := range v.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}

	if c.globals != nil && c.globals.Verbose {
		for _, v := range batch.Valid {
			if len(v.Warnings) == 0 {
				continue
			}
			fmt.Printf("\n%s  %q\n", v.Activity.ID, v.Activity.Title)
			for _, w := range v.Warnings {
				fmt.Printf("  warning: %s\n", w)
			}
		}
	}
	return nil
}
