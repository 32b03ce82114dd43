package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/tracker"
)

// taskAddedMsg is sent after the controller stored (or rejected) a task.
type taskAddedMsg struct {
	task  model.Task
	tasks []model.Task
	err   error
}

// taskDeletedMsg is sent after a confirmed delete.
type taskDeletedMsg struct {
	task   model.Task
	tasks  []model.Task
	filter model.Filter
	err    error
}

// trackingChangedMsg is sent after a start or stop request.
type trackingChangedMsg struct {
	started bool
	session model.Session
	err     error
}

// resumedMsg carries a session left open by a previous run.
type resumedMsg struct {
	active *tracker.ActiveSession
	err    error
}

// statsLoadedMsg carries a statistics snapshot.
type statsLoadedMsg struct {
	stats tracker.Statistics
	err   error
}

// categoriesLoadedMsg carries suggestions for the category prompt.
type categoriesLoadedMsg struct {
	categories []string
	err        error
}

// tickMsg drives the live timer. id ties a tick to the session that
// scheduled it so ticks from a stopped session die out.
type tickMsg struct {
	id   int
	time time.Time
}

// addTask validates and stores raw form input.
func (m *Model) addTask(fields model.TaskFields) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		task, err := ctrl.Add(context.Background(), fields)
		if err != nil {
			return taskAddedMsg{err: err}
		}
		return taskAddedMsg{task: task, tasks: ctrl.Tasks()}
	}
}

// deleteTask performs a confirmed delete.
func (m *Model) deleteTask(p tracker.PendingDelete) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		err := ctrl.ConfirmDelete(context.Background(), p)
		return taskDeletedMsg{
			task:   p.Task(),
			tasks:  ctrl.Tasks(),
			filter: ctrl.Filter(),
			err:    err,
		}
	}
}

// toggleTracking starts or stops the timer on a task.
func (m *Model) toggleTracking(taskID int64) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		change, err := ctrl.ToggleTracking(context.Background(), taskID)
		return trackingChangedMsg{started: change.Started, session: change.Session, err: err}
	}
}

// stopTracking stops whatever is being tracked.
func (m *Model) stopTracking() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		sess, err := ctrl.StopTracking(context.Background())
		return trackingChangedMsg{started: false, session: sess, err: err}
	}
}

// resume picks up an open session from the store.
func (m *Model) resume() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		active, err := ctrl.Resume(context.Background())
		return resumedMsg{active: active, err: err}
	}
}

// loadStats snapshots every task for the statistics view.
func (m *Model) loadStats() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		stats, err := ctrl.Statistics(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// loadCategories fetches the known categories for the prompt.
func (m *Model) loadCategories() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		cats, err := ctrl.Categories(context.Background())
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

// tick schedules the next timer update.
func tick(id int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{id: id, time: t}
	})
}
