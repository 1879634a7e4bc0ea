package cli

import (
	"context"
	"fmt"

	"github.com/veldrin/timesieve/internal/analytics"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for InsightsCommand.
func (c *InsightsCommand) Execute(args []string) error {
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

	return c.executeWithStore(store, analytics.Options{
		Location:          cfg.Location(),
		InsightWindowDays: cfg.Analytics.InsightWindowDays,
		StreakWindowDays:  cfg.Analytics.StreakWindowDays,
	})
}

func (c *InsightsCommand) executeWithStore(store storage.Store, opts analytics.Options) error {
	svc := analytics.NewService(store, opts)

	insights, err := svc.Insights(context.Background())
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"insights": insights})
	}

	if len(insights) == 0 {
		fmt.Println("Not enough recent activity for insights")
		return nil
	}
	for _, ins := range insights {
		fmt.Printf("%s\n  %s\n\n", ins.Title, ins.Description)
	}
	return nil
}
