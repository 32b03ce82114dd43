package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/tasklogger/internal/model"
)

// taskColumns normalizes nullable text columns so rows scan straight into
// model.Task. created_at is selected bare to keep its DATETIME type.
const taskColumns = `id, name,
	COALESCE(description, '') AS description,
	COALESCE(time_spent, 0) AS time_spent,
	COALESCE(category, '') AS category,
	created_at`

// CreateTask inserts a new task and returns its assigned id.
// CreatedAt defaults to now when zero.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (int64, error) {
	if err := task.Validate(); err != nil {
		return 0, err
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (name, description, time_spent, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(task.Name), task.Description, task.TimeSpent,
		task.Category, task.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("creating task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new task id: %w", err)
	}
	return id, nil
}

// GetTasks retrieves tasks matching the filter in insertion order.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query, args := buildTaskQuery(filter)

	tasks := []model.Task{}
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return tasks, nil
}

// ListTasks returns every task in insertion order.
func (s *SQLiteStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.GetTasks(ctx, TaskFilter{})
}

// ListTasksByCategory returns tasks whose category equals category,
// ignoring case. No match yields an empty slice, not an error.
func (s *SQLiteStore) ListTasksByCategory(ctx context.Context, category string) ([]model.Task, error) {
	return s.GetTasks(ctx, TaskFilter{Category: &category})
}

// GetTaskByID retrieves a single task by its ID.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := s.db.GetContext(ctx, &task,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting task %d: %w", id, ErrTaskNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return &task, nil
}

// DeleteTask removes a task by ID. Cascades to tracking_sessions.
// Deleting an id that does not exist is a no-op.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

// GetCategories returns the distinct non-empty categories, compared
// case-insensitively, keeping the first spelling that was stored.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := s.db.SelectContext(ctx, &categories, `
		SELECT category FROM tasks
		WHERE id IN (
			SELECT MIN(id) FROM tasks
			WHERE category IS NOT NULL AND trim(category) != ''
			GROUP BY fold_category(category)
		)
		ORDER BY fold_category(category)`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	return categories, nil
}

// buildTaskQuery constructs the SQL query and args for a TaskFilter.
func buildTaskQuery(filter TaskFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Category != nil {
		conditions = append(conditions, "fold_category(category) = ?")
		args = append(args, model.FoldCategory(*filter.Category))
	}
	if filter.CreatedSince != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.CreatedSince.UTC())
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	return query, args
}
