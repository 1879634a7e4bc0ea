package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:              "~/.config/timesieve",
			SQLiteFile:        "timesieve.db",
			SQLiteJournalMode: "wal",
		},
		Server: ServerConfig{
			Host:               "127.0.0.1",
			Port:               8590,
			ReadTimeoutSecs:    15,
			WriteTimeoutSecs:   30,
			RequestTimeoutSecs: 60,
		},
		Quality: QualityConfig{
			MinGapMinutes:       5,
			SimilarityThreshold: 80,
			MergeMaxGapSeconds:  300,
		},
		Analytics: AnalyticsConfig{
			Timezone:          "",
			HourlyPatternDays: 14,
			InsightWindowDays: 30,
			StreakWindowDays:  60,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "timesieve.log",
		},
	}
}
