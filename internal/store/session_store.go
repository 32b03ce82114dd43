package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/tasklogger/internal/model"
)

// StartSession opens a tracking session for a task. Only one session may
// be open at a time.
func (s *SQLiteStore) StartSession(
	ctx context.Context,
	taskID int64,
	start time.Time,
) (model.Session, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Session{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.GetContext(ctx, &exists,
		"SELECT COUNT(*) FROM tasks WHERE id = ?", taskID); err != nil {
		return model.Session{}, fmt.Errorf("checking task %d: %w", taskID, err)
	}
	if exists == 0 {
		return model.Session{}, fmt.Errorf("starting session for task %d: %w", taskID, ErrTaskNotFound)
	}

	var open int
	if err := tx.GetContext(ctx, &open,
		"SELECT COUNT(*) FROM tracking_sessions WHERE end_time IS NULL"); err != nil {
		return model.Session{}, fmt.Errorf("checking open sessions: %w", err)
	}
	if open > 0 {
		return model.Session{}, ErrSessionActive
	}

	sess := model.Session{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		StartTime: start.Truncate(time.Second).UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tracking_sessions (id, task_id, start_time, end_time, duration)
		VALUES (?, ?, ?, NULL, 0)`,
		sess.ID, sess.TaskID, sess.StartTime,
	)
	if err != nil {
		return model.Session{}, fmt.Errorf("creating session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Session{}, fmt.Errorf("committing session: %w", err)
	}
	return sess, nil
}

// StopSession closes an open session at end, records its duration, and
// adds the tracked seconds to the day totals of every local day the
// session overlaps. Day boundaries use end's location.
func (s *SQLiteStore) StopSession(
	ctx context.Context,
	id string,
	end time.Time,
) (model.Session, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Session{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var sess model.Session
	err = tx.GetContext(ctx, &sess, `
		SELECT id, task_id, start_time, end_time, duration
		FROM tracking_sessions
		WHERE id = ? AND end_time IS NULL`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, fmt.Errorf("stopping session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("loading session %s: %w", id, err)
	}

	end = end.Truncate(time.Second)
	if end.Before(sess.StartTime) {
		end = sess.StartTime
	}
	days := model.SplitByDay(sess.StartTime, end, end.Location())

	var total int64
	for _, d := range days {
		total += d.TotalDuration
		_, err := tx.ExecContext(ctx, `
			INSERT INTO days (date, total_duration) VALUES (?, ?)
			ON CONFLICT(date) DO UPDATE SET
				total_duration = total_duration + excluded.total_duration`,
			d.Date, d.TotalDuration,
		)
		if err != nil {
			return model.Session{}, fmt.Errorf("updating day total %s: %w", d.Date, err)
		}
	}

	endUTC := end.UTC()
	_, err = tx.ExecContext(ctx,
		"UPDATE tracking_sessions SET end_time = ?, duration = ? WHERE id = ?",
		endUTC, total, id,
	)
	if err != nil {
		return model.Session{}, fmt.Errorf("closing session %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Session{}, fmt.Errorf("committing session %s: %w", id, err)
	}

	sess.EndTime = &endUTC
	sess.Duration = total
	return sess, nil
}

// GetActiveSession returns the open session, or nil when nothing is
// being tracked.
func (s *SQLiteStore) GetActiveSession(ctx context.Context) (*model.Session, error) {
	var sess model.Session
	err := s.db.GetContext(ctx, &sess, `
		SELECT id, task_id, start_time, end_time, duration
		FROM tracking_sessions
		WHERE end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active session: %w", err)
	}
	return &sess, nil
}

// GetSessionsForTask returns all sessions of a task, oldest first.
func (s *SQLiteStore) GetSessionsForTask(ctx context.Context, taskID int64) ([]model.Session, error) {
	sessions := []model.Session{}
	err := s.db.SelectContext(ctx, &sessions, `
		SELECT id, task_id, start_time, end_time, duration
		FROM tracking_sessions
		WHERE task_id = ?
		ORDER BY start_time`, taskID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions for task %d: %w", taskID, err)
	}
	return sessions, nil
}

// GetDayTotals returns per-day tracked totals, most recent day first.
// A limit of zero returns every day.
func (s *SQLiteStore) GetDayTotals(ctx context.Context, limit int) ([]model.DayTotal, error) {
	query := "SELECT date, total_duration FROM days ORDER BY date DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	totals := []model.DayTotal{}
	if err := s.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("querying day totals: %w", err)
	}
	return totals, nil
}
