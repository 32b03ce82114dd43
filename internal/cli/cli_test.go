package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhle/tasklogger/internal/model"
)

// runCLI executes the command tree against a throwaway config, database
// and log file, returning stdout.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TASKLOGGER_LOG_FILE", filepath.Join(dir, "tasklogger.log"))

	var out bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--db", filepath.Join(dir, "tasks.db"),
	}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestAddListDelete(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "add", "--name", "Write report", "--minutes", "45", "--category", "Work")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, `Added task #1 "Write report"`) {
		t.Errorf("unexpected add output %q", out)
	}
	if _, err := runCLI(t, dir, "add", "-n", "Laundry", "-m", "20", "-c", "Home"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err = runCLI(t, dir, "list", "--category", "work")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Write report") || strings.Contains(out, "Laundry") {
		t.Errorf("expected only the Work task, got:\n%s", out)
	}

	if _, err := runCLI(t, dir, "delete", "1", "--yes"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	out, err = runCLI(t, dir, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out, "Write report") || !strings.Contains(out, "Laundry") {
		t.Errorf("expected only Laundry after delete, got:\n%s", out)
	}
}

func TestAddRejectsInvalidMinutes(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "add", "--name", "x", "--minutes", "soon")
	if err == nil || !strings.Contains(err.Error(), "time_spent") {
		t.Fatalf("expected time_spent validation error, got %v", err)
	}

	out, err := runCLI(t, dir, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No tasks") {
		t.Errorf("expected empty list, got:\n%s", out)
	}
}

func TestAddRequiresMinutes(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "add", "--name", "x")
	if err == nil || !strings.Contains(err.Error(), "time_spent") {
		t.Fatalf("expected time_spent validation error, got %v", err)
	}

	if _, err := runCLI(t, dir, "add", "--name", "x", "--minutes", "0"); err != nil {
		t.Fatalf("explicit zero minutes: %v", err)
	}
}

func TestDeleteUnknownTask(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "delete", "42", "--yes")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestListFilterRequiresCategory(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "list", "--filter", "category")
	if err == nil {
		t.Error("expected an error without --category")
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name, filter, category string
		want                   model.Filter
		wantErr                bool
	}{
		{name: "default", filter: "all", want: model.AllTasks},
		{name: "week", filter: "week", want: model.Filter{Kind: model.FilterThisWeek}},
		{name: "category flag", filter: "all", category: "Work", want: model.CategoryFilter("Work")},
		{name: "category kind", filter: "category", category: "Work", want: model.CategoryFilter("Work")},
		{name: "category without name", filter: "category", wantErr: true},
		{name: "category with today", filter: "today", category: "Work", wantErr: true},
		{name: "category with week", filter: "week", category: "Work", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilter(tt.filter, tt.category)
			if tt.wantErr {
				if !model.IsValidationError(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFilter: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestTrackLifecycle(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "add", "--name", "focus", "-m", "0"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := runCLI(t, dir, "track", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Not tracking") {
		t.Errorf("unexpected status %q", out)
	}

	if _, err := runCLI(t, dir, "track", "start", "1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err = runCLI(t, dir, "track", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, `Tracking "focus"`) {
		t.Errorf("unexpected status %q", out)
	}

	if _, err := runCLI(t, dir, "track", "start", "1"); err == nil {
		t.Error("expected starting twice to fail")
	}
	if _, err := runCLI(t, dir, "track", "stop"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, err := runCLI(t, dir, "track", "stop"); err == nil {
		t.Error("expected stopping with no timer to fail")
	}
}

func TestStatsOutput(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "add", "--name", "a", "--minutes", "30", "--category", "Work"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := runCLI(t, dir, "add", "--name", "b", "--minutes", "15", "--category", "work"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := runCLI(t, dir, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Task Name", "Time Spent (mins)", "Category", "Total: 45 minutes across 2 tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected stats output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, dir, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if _, err := runCLI(t, dir, "config", "init"); err == nil {
		t.Error("expected init to refuse overwriting without --force")
	}

	out, err := runCLI(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "week_start: monday") || !strings.Contains(out, filepath.Join(dir, "tasks.db")) {
		t.Errorf("unexpected config output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "tasklogger test" {
		t.Errorf("unexpected version output %q", out)
	}
}
