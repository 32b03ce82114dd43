package store

import (
	"context"
	"errors"
	"time"

	"github.com/nhle/tasklogger/internal/model"
)

var (
	// ErrTaskNotFound is returned when a task id does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrSessionNotFound is returned when a session id does not exist or
	// the session is already closed.
	ErrSessionNotFound = errors.New("tracking session not found")

	// ErrSessionActive is returned when starting a session while another
	// one is still open.
	ErrSessionActive = errors.New("another tracking session is already active")
)

// TaskFilter controls filtering and pagination for task queries.
// Results are always in insertion order.
type TaskFilter struct {
	Category     *string    // case-insensitive exact match, nil for any
	CreatedSince *time.Time // created_at >= value, nil for any
	Limit        int
	Offset       int
}

// Store defines the persistence interface for tasks, tracking sessions,
// and per-day totals.
type Store interface {
	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (int64, error)
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListTasksByCategory(ctx context.Context, category string) ([]model.Task, error)
	GetTaskByID(ctx context.Context, id int64) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	GetCategories(ctx context.Context) ([]string, error)

	// === Tracking sessions ===

	StartSession(ctx context.Context, taskID int64, start time.Time) (model.Session, error)
	StopSession(ctx context.Context, id string, end time.Time) (model.Session, error)
	GetActiveSession(ctx context.Context) (*model.Session, error)
	GetSessionsForTask(ctx context.Context, taskID int64) ([]model.Session, error)

	// === Day totals ===

	GetDayTotals(ctx context.Context, limit int) ([]model.DayTotal, error)
}
