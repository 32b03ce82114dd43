package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(store.MemoryPath)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedTask inserts a task and returns it with its assigned id.
func SeedTask(t *testing.T, s store.Store, task model.Task) model.Task {
	t.Helper()

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	id, err := s.CreateTask(context.Background(), task)
	if err != nil {
		t.Fatalf("seeding task %q: %v", task.Name, err)
	}
	task.ID = id
	return task
}
