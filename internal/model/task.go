package model

import (
	"strconv"
	"strings"
	"time"
)

// Task is a user-defined unit of work with a manually entered time estimate.
type Task struct {
	// ID is assigned by the store on creation and never changes.
	ID int64 `json:"id" db:"id"`

	// Name is the required, human-readable label of the task.
	Name string `json:"name" db:"name"`

	// Description is optional free text.
	Description string `json:"description" db:"description"`

	// TimeSpent is the number of minutes the user reports for the task.
	TimeSpent int `json:"time_spent" db:"time_spent"`

	// Category is an optional label used by the category filter.
	Category string `json:"category" db:"category"`

	// CreatedAt is when the task was stored. It drives the Today and
	// This Week filters.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TaskFields is the raw input collected by the add-task form, exactly as
// the user typed it.
type TaskFields struct {
	Name        string
	Description string
	TimeSpent   string
	Category    string
}

// ParseTaskFields validates raw form input and converts it into a Task
// ready for the store. The returned error is always a *ValidationError.
func ParseTaskFields(f TaskFields) (Task, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Task{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	raw := strings.TrimSpace(f.TimeSpent)
	if raw == "" {
		return Task{}, &ValidationError{Field: "time_spent", Reason: "is required"}
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return Task{}, &ValidationError{
			Field:  "time_spent",
			Reason: "must be a whole number of minutes",
			Value:  f.TimeSpent,
		}
	}
	if minutes < 0 {
		return Task{}, &ValidationError{
			Field:  "time_spent",
			Reason: "must not be negative",
			Value:  f.TimeSpent,
		}
	}

	return Task{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		TimeSpent:   minutes,
		Category:    strings.TrimSpace(f.Category),
	}, nil
}

// Validate checks the invariants a task must satisfy before it is persisted.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if t.TimeSpent < 0 {
		return &ValidationError{
			Field:  "time_spent",
			Reason: "must not be negative",
			Value:  strconv.Itoa(t.TimeSpent),
		}
	}
	return nil
}

// CategoryLabel returns the category for display, or a placeholder when
// the task has none.
func (t Task) CategoryLabel() string {
	if t.Category == "" {
		return "uncategorized"
	}
	return t.Category
}

// FoldCategory returns the key categories are compared by: trimmed and
// lower-cased with full Unicode case mapping. The store registers the same
// function with SQLite so queries and Go code agree.
func FoldCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// SameCategory reports whether two category labels are equal ignoring case.
func SameCategory(a, b string) bool {
	return FoldCategory(a) == FoldCategory(b)
}
