package tasklist

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/theme"
	"github.com/nhle/tasklogger/internal/tracker"
)

// TasksLoadedMsg is sent when the controller has reloaded the list.
type TasksLoadedMsg struct {
	Tasks  []model.Task
	Filter model.Filter
	Err    error
}

// Model is the main task list view component.
type Model struct {
	list   list.Model
	ctrl   *tracker.Controller
	filter model.Filter
	timer  *timerState
	width  int
	height int
}

// New creates a new task list model showing f once loaded.
func New(ctrl *tracker.Controller, f model.Filter, width, height int) Model {
	timer := &timerState{}
	l := list.New([]list.Item{}, ItemDelegate{timer: timer}, width, height-2)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	m := Model{
		list:   l,
		ctrl:   ctrl,
		filter: f,
		timer:  timer,
		width:  width,
		height: height,
	}
	m.setTitle()
	return m
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks(m.filter)
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		if msg.Err != nil {
			return m, nil
		}
		m.filter = msg.Filter
		m.setTitle()
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{Task: task}
		}
		cmd := m.list.SetItems(items)
		return m, cmd
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter.Kind != model.FilterAll {
		return style.Render(
			"No tasks match " + m.filter.Label() + ".\n" +
				"Press f to change the filter.",
		)
	}

	return style.Render("No tasks yet.\n\nPress n to add one.")
}

// LoadTasks returns a tea.Cmd that asks the controller to reload with f.
func (m Model) LoadTasks(f model.Filter) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		tasks, err := ctrl.Refresh(context.Background(), f)
		return TasksLoadedMsg{Tasks: tasks, Filter: f, Err: err}
	}
}

// Reload reloads using the active filter.
func (m Model) Reload() tea.Cmd {
	return m.LoadTasks(m.filter)
}

// SelectedTask returns the highlighted task, if any.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Filter returns the filter of the displayed list.
func (m Model) Filter() model.Filter {
	return m.filter
}

// SetActive marks which task has a running timer. nil clears it.
func (m *Model) SetActive(a *tracker.ActiveSession) {
	if a == nil {
		m.timer.taskID = 0
		return
	}
	m.timer.taskID = a.Session.TaskID
	m.timer.start = a.Session.StartTime
}

// Tick advances the live timer.
func (m *Model) Tick(now time.Time) {
	m.timer.now = now
}

// Len returns the number of displayed tasks.
func (m Model) Len() int {
	return len(m.list.Items())
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

func (m *Model) setTitle() {
	m.list.Title = "Tasks · " + m.filter.Label()
}

// NextFilter cycles All, Today and This Week. A category filter cycles back
// to All.
func NextFilter(f model.Filter) model.Filter {
	switch f.Kind {
	case model.FilterAll:
		return model.Filter{Kind: model.FilterToday}
	case model.FilterToday:
		return model.Filter{Kind: model.FilterThisWeek}
	default:
		return model.AllTasks
	}
}
