package cli

import (
	"context"
	"fmt"

	"github.com/veldrin/timesieve/internal/quality"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for DuplicatesCommand.
func (c *DuplicatesCommand) Execute(args []string) error {
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

func (c *DuplicatesCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	svc := quality.NewService(store)

	start, end, err := resolveRange(c.rangeFlags)
	if err != nil {
		return err
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100, got %d", c.Threshold)
	}

	groups, err := svc.Duplicates(ctx, start, end, c.Threshold)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"groups": groups, "count": len(groups)})
	}

	if len(groups) == 0 {
		fmt.Printf("No duplicate groups at threshold %d (%s)\n", c.Threshold, rangeLabel(start, end))
		return nil
	}
	fmt.Printf("Duplicate groups (%s):\n", rangeLabel(start, end))
	for i, g := range groups {
		fmt.Printf("Group %d (similarity %d):\n", i+1, g.Similarity)
		for _, a := range g.Activities {
			fmt.Printf("  [%s] %s  %q\n", a.SourceType, a.StartTime.Local().Format("2006-01-02 15:04"), a.Title)
		}
	}
	return nil
}
