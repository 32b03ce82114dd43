package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/tracker"
	"github.com/nhle/tasklogger/internal/ui/taskform"
	"github.com/nhle/tasklogger/internal/ui/tasklist"
	"github.com/nhle/tasklogger/tests/testutil"
)

func newTestModel(t *testing.T) (Model, *tracker.Controller) {
	t.Helper()
	ctrl := tracker.New(testutil.NewTestStore(t), nil)
	m := New(ctrl, nil, model.AllTasks)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), ctrl
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// run feeds msg to m and then feeds the result of the returned command back
// once, which is enough for the single-step store commands.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	updated, _ = m.Update(cmd())
	return updated.(Model)
}

func TestDeleteWithoutSelectionWarns(t *testing.T) {
	m, _ := newTestModel(t)

	updated, cmd := m.Update(keyPress('d'))
	m = updated.(Model)

	if cmd != nil {
		t.Error("expected no command without a selection")
	}
	if m.currentView != ViewList {
		t.Errorf("expected to stay on the list, got view %d", m.currentView)
	}
	if !m.statusErr || !strings.Contains(m.status, "Select a task") {
		t.Errorf("expected warning in status bar, got %q", m.status)
	}
}

func TestAddOpensFormAndSubmitStores(t *testing.T) {
	m, ctrl := newTestModel(t)

	updated, _ := m.Update(keyPress('n'))
	m = updated.(Model)
	if m.currentView != ViewForm {
		t.Fatalf("expected form view, got %d", m.currentView)
	}

	m = run(t, m, taskform.SubmitMsg{Fields: model.TaskFields{
		Name:      "Write report",
		TimeSpent: "45",
		Category:  "Work",
	}})

	if m.currentView != ViewList {
		t.Errorf("expected list view after submit, got %d", m.currentView)
	}
	if m.taskList.Len() != 1 {
		t.Fatalf("expected one listed task, got %d", m.taskList.Len())
	}
	if len(ctrl.Tasks()) != 1 {
		t.Errorf("expected controller to hold the task")
	}
	if m.statusErr {
		t.Errorf("unexpected error status %q", m.status)
	}
}

func TestInvalidSubmitShowsError(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = run(t, m, taskform.SubmitMsg{Fields: model.TaskFields{Name: "x", TimeSpent: "abc"}})

	if !m.statusErr || !strings.Contains(m.status, "time_spent") {
		t.Errorf("expected validation error in status, got %q", m.status)
	}
	tasks, err := ctrl.Refresh(context.Background(), model.AllTasks)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected nothing stored, got %d", len(tasks))
	}
}

func TestDeleteOpensConfirmation(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctx := context.Background()
	if _, err := ctrl.Add(ctx, model.TaskFields{Name: "doomed", TimeSpent: "5"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	m = run(t, m, tasklist.TasksLoadedMsg{Tasks: ctrl.Tasks(), Filter: model.AllTasks})

	updated, cmd := m.Update(keyPress('d'))
	m = updated.(Model)

	if m.currentView != ViewPrompt || m.prompt == nil || m.prompt.kind != promptDelete {
		t.Fatalf("expected delete confirmation prompt, got view %d", m.currentView)
	}
	if cmd == nil {
		t.Error("expected the prompt to initialise")
	}
	// Nothing is removed before the user answers.
	if len(ctrl.Tasks()) != 1 {
		t.Errorf("expected task to remain until confirmed")
	}
}

func TestConfirmedDeleteRemovesTask(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctx := context.Background()
	if _, err := ctrl.Add(ctx, model.TaskFields{Name: "doomed", TimeSpent: "5"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := ctrl.Add(ctx, model.TaskFields{Name: "kept", TimeSpent: "7"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	pending, err := ctrl.PrepareDelete(ctrl.Tasks()[0].ID)
	if err != nil {
		t.Fatalf("PrepareDelete: %v", err)
	}

	m = run(t, m, m.deleteTask(pending)())

	if m.taskList.Len() != 1 {
		t.Fatalf("expected one task left, got %d", m.taskList.Len())
	}
	task, _ := m.taskList.SelectedTask()
	if task.Name != "kept" || task.TimeSpent != 7 {
		t.Errorf("unexpected remaining task %+v", task)
	}
}

func TestTrackingToggleUpdatesHeader(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctx := context.Background()
	if _, err := ctrl.Add(ctx, model.TaskFields{Name: "focus", TimeSpent: "0"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	m = run(t, m, tasklist.TasksLoadedMsg{Tasks: ctrl.Tasks(), Filter: model.AllTasks})

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.active == nil || m.active.TaskName != "focus" {
		t.Fatalf("expected tracking to start, got %+v", m.active)
	}
	if !strings.Contains(m.trackingStatus(), "focus") {
		t.Errorf("expected header to show the tracked task, got %q", m.trackingStatus())
	}

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.active != nil {
		t.Error("expected tracking to stop")
	}
}

func TestCycleFilter(t *testing.T) {
	m, _ := newTestModel(t)

	m = run(t, m, keyPress('f'))
	if m.taskList.Filter().Kind != model.FilterToday {
		t.Errorf("expected Today after one press, got %s", m.taskList.Filter().Label())
	}
	m = run(t, m, keyPress('f'))
	if m.taskList.Filter().Kind != model.FilterThisWeek {
		t.Errorf("expected This Week after two presses, got %s", m.taskList.Filter().Label())
	}
}

func TestExecuteCategoryCommand(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctx := context.Background()
	for _, f := range []model.TaskFields{
		{Name: "a", TimeSpent: "1", Category: "Work"},
		{Name: "b", TimeSpent: "1", Category: "Home"},
	} {
		if _, err := ctrl.Add(ctx, f); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	updated, cmd := m.executeCommand("category work")
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.taskList.Len() != 1 {
		t.Errorf("expected one Work task, got %d", m.taskList.Len())
	}
	if m.taskList.Filter().Kind != model.FilterCategory {
		t.Errorf("expected category filter, got %s", m.taskList.Filter().Label())
	}
}

func TestUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.executeCommand("frobnicate")
	m = updated.(Model)
	if !m.statusErr || !strings.Contains(m.status, "frobnicate") {
		t.Errorf("expected unknown-command error, got %q", m.status)
	}
}
