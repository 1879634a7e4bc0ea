package storage

import "database/sql"

// migrateV001 creates the initial timesieve schema: activities from all
// three capture sources, categories, daily goals, and indexes. Every
// statement uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS activities (
			id               TEXT PRIMARY KEY,
			source_type      TEXT NOT NULL CHECK (source_type IN ('manual', 'automatic', 'pomodoro')),
			title            TEXT NOT NULL DEFAULT '',
			start_time       DATETIME NOT NULL,
			end_time         DATETIME,
			duration_seconds INTEGER,
			category_id      TEXT,
			app_name         TEXT NOT NULL DEFAULT '',
			domain           TEXT NOT NULL DEFAULT '',
			url              TEXT NOT NULL DEFAULT '',
			is_idle          BOOLEAN NOT NULL DEFAULT 0,
			is_browser       BOOLEAN NOT NULL DEFAULT 0,
			session_kind     TEXT NOT NULL DEFAULT '',
			completed        BOOLEAN NOT NULL DEFAULT 0,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			color      TEXT NOT NULL DEFAULT '',
			is_default BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id             TEXT PRIMARY KEY,
			category_id    TEXT,
			target_minutes INTEGER NOT NULL,
			active         BOOLEAN NOT NULL DEFAULT 1,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// ── Indexes ────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_activities_start        ON activities(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_source       ON activities(source_type)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_start_source ON activities(start_time, source_type)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_category     ON activities(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_app          ON activities(app_name)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return seedDefaultCategories(tx)
}

// seedDefaultCategories inserts the starter category set. Uses INSERT OR
// IGNORE so re-running is safe; user-created categories are never touched.
func seedDefaultCategories(tx *sql.Tx) error {
	type cat struct {
		ID    string
		Name  string
		Color string
	}

	defaults := []cat{
		{"cat-work", "Work", "#4C6EF5"},
		{"cat-meetings", "Meetings", "#FA5252"},
		{"cat-learning", "Learning", "#40C057"},
		{"cat-writing", "Writing", "#FAB005"},
		{"cat-communication", "Communication", "#15AABF"},
		{"cat-personal", "Personal", "#BE4BDB"},
	}

	const insertSQL = `INSERT OR IGNORE INTO categories (id, name, color, is_default) VALUES (?, ?, ?, 1)`

	for _, c := range defaults {
		if _, err := tx.Exec(insertSQL, c.ID, c.Name, c.Color); err != nil {
			return err
		}
	}

	return nil
}
