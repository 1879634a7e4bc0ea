package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if c.Title == "" {
		return fmt.Errorf("--title is required")
	}

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

// executeWithStore records the entry against a provided store (for testing).
func (c *AddCommand) executeWithStore(store storage.Store) error {
	start, err := parseStartTime(c.Start)
	if err != nil {
		return err
	}

	activity := &storage.Activity{
		SourceType: storage.SourceManual,
		Title:      c.Title,
		StartTime:  start,
		CategoryID: c.Category,
		AppName:    c.App,
	}
	if c.Minutes > 0 {
		seconds := int64(c.Minutes) * 60
		end := start.Add(time.Duration(seconds) * time.Second)
		activity.EndTime = &end
		activity.DurationSeconds = &seconds
	}

	if err := store.AddActivity(context.Background(), activity); err != nil {
		return fmt.Errorf("add activity: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]string{"id": activity.ID})
	}
	fmt.Printf("Recorded %q (%s)\n", c.Title, activity.ID)
	return nil
}
