// Package storage defines the persistence interface for republish
// schedules, the one piece of state the dashboard owns. Normalized upstream
// entities are never persisted; they are recomputed on every fetch.
package storage

import (
	"context"
	"time"
)

// Schedule statuses.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusCancelled = "cancelled"
)

// Schedule is a planned republication of a captured content item through a
// monitored account.
type Schedule struct {
	ID        string    `json:"id"`
	ContentID string    `json:"contentId"`
	AccountID string    `json:"accountId"`
	Caption   string    `json:"caption,omitempty"`
	PublishAt time.Time `json:"publishAt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScheduleStore persists republish schedules.
type ScheduleStore interface {
	CreateSchedule(ctx context.Context, s *Schedule) error
	GetSchedule(ctx context.Context, id string) (*Schedule, error)
	// ListSchedules returns one page of schedules ordered by publish time,
	// plus the total count.
	ListSchedules(ctx context.Context, page, limit int) ([]*Schedule, int, error)
	UpdateScheduleStatus(ctx context.Context, id, status string) error
	DeleteSchedule(ctx context.Context, id string) error
	Close() error
}

// ErrNotFound is returned when a schedule does not exist.
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return "schedule " + e.ID + " not found"
}
