package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/veldrin/timesieve/internal/analytics"
	"github.com/veldrin/timesieve/internal/storage"
)

// Execute implements the go-flags Commander interface for HeatmapCommand.
func (c *HeatmapCommand) Execute(args []string) error {
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

func (c *HeatmapCommand) executeWithStore(store storage.Store, loc *time.Location) error {
	year := c.Year
	if year == 0 {
		year = time.Now().In(loc).Year()
	}

	svc := analytics.NewService(store, analytics.Options{Location: loc})
	days, err := svc.Heatmap(context.Background(), year)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"year": year, "days": days})
	}

	// One row per month, one glyph per day.
	glyphs := []string{".", "-", "=", "*", "#"}
	fmt.Printf("Activity heatmap %d\n", year)
	byMonth := make(map[string][]analytics.HeatmapDay)
	for _, d := range days {
		month := d.Date[:7]
		byMonth[month] = append(byMonth[month], d)
	}
	for m := 1; m <= 12; m++ {
		key := fmt.Sprintf("%d-%02d", year, m)
		row := byMonth[key]
		if len(row) == 0 {
			continue
		}
		fmt.Printf("%s  ", time.Month(m).String()[:3])
		for _, d := range row {
			fmt.Print(glyphs[d.Intensity])
		}
		fmt.Println()
	}
	return nil
}
