// Package sqlite is the SQLite implementation of the schedule store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/curatorhq/social-admin-gateway/internal/storage"
)

// Store is a SQLite implementation of storage.ScheduleStore.
type Store struct {
	db *sql.DB
}

var _ storage.ScheduleStore = (*Store)(nil)

// New opens (or creates) the database at dbPath and initializes the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS schedules (
			id TEXT PRIMARY KEY,
			content_id TEXT NOT NULL,
			account_id TEXT NOT NULL,
			caption TEXT,
			publish_at TIMESTAMP NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_publish_at ON schedules(publish_at)`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_status ON schedules(status)`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_account ON schedules(account_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

func (s *Store) CreateSchedule(ctx context.Context, sched *storage.Schedule) error {
	now := time.Now().UTC()
	sched.CreatedAt = now
	sched.UpdatedAt = now
	if sched.Status == "" {
		sched.Status = storage.StatusPending
	}

	query := `INSERT INTO schedules (id, content_id, account_id, caption, publish_at, status, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		sched.ID, sched.ContentID, sched.AccountID, sched.Caption,
		sched.PublishAt.UTC(), sched.Status, sched.CreatedAt, sched.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (s *Store) GetSchedule(ctx context.Context, id string) (*storage.Schedule, error) {
	query := `SELECT id, content_id, account_id, caption, publish_at, status, created_at, updated_at
	          FROM schedules WHERE id = ?`

	var sched storage.Schedule
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sched.ID, &sched.ContentID, &sched.AccountID, &sched.Caption,
		&sched.PublishAt, &sched.Status, &sched.CreatedAt, &sched.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &storage.ErrNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &sched, nil
}

func (s *Store) ListSchedules(ctx context.Context, page, limit int) ([]*storage.Schedule, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count schedules: %w", err)
	}

	query := `SELECT id, content_id, account_id, caption, publish_at, status, created_at, updated_at
	          FROM schedules ORDER BY publish_at ASC LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*storage.Schedule
	for rows.Next() {
		var sched storage.Schedule
		if err := rows.Scan(
			&sched.ID, &sched.ContentID, &sched.AccountID, &sched.Caption,
			&sched.PublishAt, &sched.Status, &sched.CreatedAt, &sched.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, &sched)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate schedules: %w", err)
	}
	return schedules, total, nil
}

func (s *Store) UpdateScheduleStatus(ctx context.Context, id, status string) error {
	query := `UPDATE schedules SET status = ?, updated_at = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return &storage.ErrNotFound{ID: id}
	}
	return nil
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return &storage.ErrNotFound{ID: id}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
