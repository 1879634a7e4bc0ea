package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store defines the interface for timesieve data operations. Listing is
// the snapshot primitive: reconciliation and analytics fetch one range and
// compute everything from it, so a report never observes a half-written
// mutation.
type Store interface {
	AddActivity(ctx context.Context, activity *Activity) error
	GetActivity(ctx context.Context, id string) (*Activity, error)
	ListActivities(ctx context.Context, query ActivityQuery) ([]Activity, error)
	UpdateActivity(ctx context.Context, id string, update ActivityUpdate) (bool, error)
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	GetCategories(ctx context.Context) ([]Category, error)
	GetActiveGoals(ctx context.Context) ([]Goal, error)
	AddGoal(ctx context.Context, goal *Goal) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertActivity *sql.Stmt
	getActivity    *sql.Stmt
	insertGoal     *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

const activityColumns = `id, source_type, title, start_time, end_time, duration_seconds,
	category_id, app_name, domain, url, is_idle, is_browser, session_kind, completed`

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertActivity, err = s.db.Prepare(`
		INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getActivity, err = s.db.Prepare(`
		SELECT ` + activityColumns + ` FROM activities WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.insertGoal, err = s.db.Prepare(`
		INSERT INTO goals (id, category_id, target_minutes, active)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	return nil
}

// generateID creates a timesieve record ID.
func generateID() string {
	return uuid.NewString()
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// formatTime normalizes a timestamp for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// AddActivity inserts a new activity. The ID is generated when empty, and
// StartTime defaults to now.
func (s *SQLiteStore) AddActivity(ctx context.Context, activity *Activity) error {
	if !activity.SourceType.Valid() {
		return fmt.Errorf("invalid source type %q", activity.SourceType)
	}

	if activity.ID == "" {
		activity.ID = generateID()
	}
	if activity.StartTime.IsZero() {
		activity.StartTime = time.Now()
	}

	var endTime, categoryID any
	if activity.EndTime != nil {
		endTime = formatTime(*activity.EndTime)
	}
	if activity.CategoryID != "" {
		categoryID = activity.CategoryID
	}

	var duration any
	if activity.DurationSeconds != nil {
		duration = *activity.DurationSeconds
	}

	_, err := s.insertActivity.ExecContext(ctx,
		activity.ID, string(activity.SourceType), activity.Title,
		formatTime(activity.StartTime), endTime, duration, categoryID,
		activity.AppName, activity.Domain, activity.URL,
		activity.IsIdle, activity.IsBrowser,
		activity.SessionKind, activity.Completed,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	return nil
}

// GetActivity retrieves a single activity by ID.
func (s *SQLiteStore) GetActivity(ctx context.Context, id string) (*Activity, error) {
	row := s.getActivity.QueryRowContext(ctx, id)
	a, err := scanActivity(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("activity %s not found", id)
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

// ListActivities returns the unified activity snapshot for a time range,
// ordered ascending by start time. An empty SourceType returns all three
// capture sources interleaved.
func (s *SQLiteStore) ListActivities(ctx context.Context, query ActivityQuery) ([]Activity, error) {
	var clauses []string
	var args []any

	if !query.Start.IsZero() {
		clauses = append(clauses, "start_time >= ?")
		args = append(args, formatTime(query.Start))
	}
	if !query.End.IsZero() {
		clauses = append(clauses, "start_time < ?")
		args = append(args, formatTime(query.End))
	}
	if query.SourceType != "" {
		clauses = append(clauses, "source_type = ?")
		args = append(args, string(query.SourceType))
	}

	q := "SELECT " + activityColumns + " FROM activities"
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY start_time ASC"

	if query.Limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, query.Limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	activities := []Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, *a)
	}

	return activities, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for scanActivity.
type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(sc scanner) (*Activity, error) {
	var a Activity
	var sourceType, startStr string
	var endStr, categoryID sql.NullString
	var duration sql.NullInt64

	err := sc.Scan(
		&a.ID, &sourceType, &a.Title, &startStr, &endStr, &duration,
		&categoryID, &a.AppName, &a.Domain, &a.URL,
		&a.IsIdle, &a.IsBrowser, &a.SessionKind, &a.Completed,
	)
	if err != nil {
		return nil, err
	}

	a.SourceType = SourceType(sourceType)
	a.StartTime, _ = parseTimestamp(startStr)

	if endStr.Valid {
		if t, err := parseTimestamp(endStr.String); err == nil {
			a.EndTime = &t
		}
	}
	if duration.Valid {
		d := duration.Int64
		a.DurationSeconds = &d
	}
	if categoryID.Valid {
		a.CategoryID = categoryID.String
	}

	return &a, nil
}

// UpdateActivity applies the non-nil fields of update to one activity in
// its own transaction. Returns false when no row matched.
func (s *SQLiteStore) UpdateActivity(ctx context.Context, id string, update ActivityUpdate) (bool, error) {
	var sets []string
	var args []any

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.EndTime != nil {
		sets = append(sets, "end_time = ?")
		args = append(args, formatTime(*update.EndTime))
	}
	if update.DurationSeconds != nil {
		sets = append(sets, "duration_seconds = ?")
		args = append(args, *update.DurationSeconds)
	}
	if update.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		if *update.CategoryID == "" {
			args = append(args, nil) // clear the category
		} else {
			args = append(args, *update.CategoryID)
		}
	}

	if len(sets) == 0 {
		return false, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(time.Now()))
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE activities SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...,
	)
	if err != nil {
		return false, fmt.Errorf("update activity: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BulkDelete removes the given activities in a single transaction and
// returns the number of rows deleted.
func (s *SQLiteStore) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM activities WHERE id IN ("+strings.Join(placeholders, ",")+")", args...,
	)
	if err != nil {
		return 0, fmt.Errorf("bulk delete: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return n, tx.Commit()
}

// GetCategories returns all categories ordered by name.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, color FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetActiveGoals returns all active daily goals.
func (s *SQLiteStore) GetActiveGoals(ctx context.Context) ([]Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, category_id, target_minutes, active FROM goals WHERE active = 1",
	)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	goals := []Goal{}
	for rows.Next() {
		var g Goal
		var categoryID sql.NullString
		if err := rows.Scan(&g.ID, &categoryID, &g.TargetMinutes, &g.Active); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if categoryID.Valid {
			g.CategoryID = categoryID.String
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// AddGoal inserts a daily goal. The ID is generated when empty.
func (s *SQLiteStore) AddGoal(ctx context.Context, goal *Goal) error {
	if goal.ID == "" {
		goal.ID = generateID()
	}

	var categoryID any
	if goal.CategoryID != "" {
		categoryID = goal.CategoryID
	}

	_, err := s.insertGoal.ExecContext(ctx, goal.ID, categoryID, goal.TargetMinutes, goal.Active)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM activities").Scan(&stats.TotalActivities)
	if err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.TotalActivities > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx,
			"SELECT MIN(start_time), MAX(start_time) FROM activities",
		).Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("activity time range: %w", err)
		}
		stats.OldestActivity, _ = parseTimestamp(oldestStr)
		stats.NewestActivity, _ = parseTimestamp(newestStr)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT source_type, COUNT(*) as cnt FROM activities GROUP BY source_type ORDER BY cnt DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("source breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc SourceCount
		var source string
		if err := rows.Scan(&source, &sc.Count); err != nil {
			return nil, err
		}
		sc.Source = SourceType(source)
		stats.BySource = append(stats.BySource, sc)
	}

	return stats, rows.Err()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.insertActivity, s.getActivity, s.insertGoal}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
