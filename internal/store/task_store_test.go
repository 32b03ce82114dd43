package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/store"
	"github.com/nhle/tasklogger/tests/testutil"
)

func TestCreateTaskThenList(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.CreateTask(ctx, model.Task{
		Name:      "Write report",
		TimeSpent: 45,
		Category:  "Work",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if id != 1 {
		t.Errorf("expected first id to be 1, got %d", id)
	}

	tasks, err := s.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	got := tasks[0]
	if got.ID != 1 || got.Name != "Write report" || got.TimeSpent != 45 ||
		got.Category != "Work" || got.Description != "" {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestCreateTaskAssignsDistinctIDs(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		id, err := s.CreateTask(ctx, model.Task{Name: "task", TimeSpent: i})
		if err != nil {
			t.Fatalf("CreateTask #%d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
}

func TestCreateTaskRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		task  model.Task
		field string
	}{
		{"empty name", model.Task{Name: "", TimeSpent: 10, Category: "Work"}, "name"},
		{"blank name", model.Task{Name: "   ", TimeSpent: 10}, "name"},
		{"negative time", model.Task{Name: "x", TimeSpent: -5}, "time_spent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.NewTestStore(t)
			ctx := context.Background()

			_, err := s.CreateTask(ctx, tt.task)
			var vErr *model.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, vErr.Field)
			}

			tasks, err := s.ListTasks(ctx)
			if err != nil {
				t.Fatalf("ListTasks: %v", err)
			}
			if len(tasks) != 0 {
				t.Errorf("expected no stored tasks, got %d", len(tasks))
			}
		})
	}
}

func TestListTasksInsertionOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	names := []string{"charlie", "alpha", "bravo"}
	for _, n := range names {
		testutil.SeedTask(t, s, model.Task{Name: n})
	}

	tasks, err := s.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != len(names) {
		t.Fatalf("expected %d tasks, got %d", len(names), len(tasks))
	}
	for i, n := range names {
		if tasks[i].Name != n {
			t.Errorf("position %d: expected %q, got %q", i, n, tasks[i].Name)
		}
	}
}

func TestDeleteTask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first := testutil.SeedTask(t, s, model.Task{Name: "first", TimeSpent: 10, Category: "Work"})
	second := testutil.SeedTask(t, s, model.Task{Name: "second", TimeSpent: 20, Description: "keep me"})

	if err := s.DeleteTask(ctx, first.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	tasks, err := s.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != second.ID || got.Name != "second" || got.TimeSpent != 20 || got.Description != "keep me" {
		t.Errorf("second task changed: %+v", got)
	}

	if _, err := s.GetTaskByID(ctx, first.ID); !errors.Is(err, store.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound for deleted task, got %v", err)
	}
}

func TestDeleteTaskMissingIsNoop(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	testutil.SeedTask(t, s, model.Task{Name: "only"})

	if err := s.DeleteTask(ctx, 999); err != nil {
		t.Fatalf("expected no error deleting missing id, got %v", err)
	}

	tasks, err := s.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected table unchanged, got %d tasks", len(tasks))
	}
}

func TestListTasksByCategory(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.SeedTask(t, s, model.Task{Name: "a", Category: "Work"})
	testutil.SeedTask(t, s, model.Task{Name: "b", Category: "home"})
	testutil.SeedTask(t, s, model.Task{Name: "c", Category: "WORK"})
	testutil.SeedTask(t, s, model.Task{Name: "d"})

	tests := []struct {
		category string
		want     []string
	}{
		{"Work", []string{"a", "c"}},
		{"work", []string{"a", "c"}},
		{" wOrK ", []string{"a", "c"}},
		{"Home", []string{"b"}},
		{"Errands", nil},
		{"", []string{"d"}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			tasks, err := s.ListTasksByCategory(ctx, tt.category)
			if err != nil {
				t.Fatalf("ListTasksByCategory: %v", err)
			}
			if tasks == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(tasks) != len(tt.want) {
				t.Fatalf("expected %d tasks, got %d", len(tt.want), len(tasks))
			}
			for i, name := range tt.want {
				if tasks[i].Name != name {
					t.Errorf("position %d: expected %q, got %q", i, name, tasks[i].Name)
				}
			}
		})
	}
}

func TestGetTasksCreatedSince(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	testutil.SeedTask(t, s, model.Task{Name: "old", CreatedAt: base.Add(-48 * time.Hour)})
	testutil.SeedTask(t, s, model.Task{Name: "edge", CreatedAt: base})
	testutil.SeedTask(t, s, model.Task{Name: "new", CreatedAt: base.Add(90 * time.Minute)})

	tasks, err := s.GetTasks(ctx, store.TaskFilter{CreatedSince: &base})
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Name != "edge" || tasks[1].Name != "new" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestGetCategories(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.SeedTask(t, s, model.Task{Name: "a", Category: "Work"})
	testutil.SeedTask(t, s, model.Task{Name: "b", Category: "work"})
	testutil.SeedTask(t, s, model.Task{Name: "c", Category: "Admin"})
	testutil.SeedTask(t, s, model.Task{Name: "d"})

	cats, err := s.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("GetCategories: %v", err)
	}
	want := []string{"Admin", "Work"}
	if len(cats) != len(want) {
		t.Fatalf("expected %v, got %v", want, cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("expected %v, got %v", want, cats)
		}
	}
}

func TestCategoryMatchingFoldsUnicode(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.SeedTask(t, s, model.Task{Name: "a", Category: "Étude"})
	testutil.SeedTask(t, s, model.Task{Name: "b", Category: "étude"})
	testutil.SeedTask(t, s, model.Task{Name: "c", Category: "ÜBUNG"})

	for _, category := range []string{"Étude", "étude", "ÉTUDE"} {
		tasks, err := s.ListTasksByCategory(ctx, category)
		if err != nil {
			t.Fatalf("ListTasksByCategory(%q): %v", category, err)
		}
		if len(tasks) != 2 || tasks[0].Name != "a" || tasks[1].Name != "b" {
			t.Errorf("ListTasksByCategory(%q): expected a and b, got %+v", category, tasks)
		}
	}

	tasks, err := s.ListTasksByCategory(ctx, "übung")
	if err != nil {
		t.Fatalf("ListTasksByCategory: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "c" {
		t.Errorf("expected c, got %+v", tasks)
	}

	cats, err := s.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories: %v", err)
	}
	if len(cats) != 2 || cats[0] != "Étude" || cats[1] != "ÜBUNG" {
		t.Errorf("expected [Étude ÜBUNG], got %v", cats)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "tasks.db")

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	testutil.SeedTask(t, s, model.Task{Name: "persisted", TimeSpent: 5})

	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	version, err := reopened.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 3 {
		t.Errorf("expected schema version 3, got %d", version)
	}

	tasks, err := reopened.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "persisted" {
		t.Errorf("expected persisted task to survive reopen, got %+v", tasks)
	}
}
