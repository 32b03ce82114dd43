package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/tasklogger/internal/keys"
	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/store"
	"github.com/nhle/tasklogger/internal/theme"
	"github.com/nhle/tasklogger/internal/tracker"
	"github.com/nhle/tasklogger/internal/ui"
	"github.com/nhle/tasklogger/internal/ui/command"
	helpview "github.com/nhle/tasklogger/internal/ui/help"
	"github.com/nhle/tasklogger/internal/ui/stats"
	"github.com/nhle/tasklogger/internal/ui/taskform"
	"github.com/nhle/tasklogger/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
	ViewStats
	ViewHelp
	ViewCommand
	ViewPrompt
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the controller.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	ctrl         *tracker.Controller
	log          *zap.Logger
	keys         *keys.KeyMap
	taskList     tasklist.Model
	taskForm     taskform.Model
	statsView    stats.Model
	helpView     helpview.Model
	commandView  command.Model
	prompt       *prompt
	active       *tracker.ActiveSession
	clock        time.Time
	tickID       int
	status       string
	statusErr    bool
	ready        bool
}

// New creates a new root application model over ctrl, showing initial
// once the first load completes.
func New(ctrl *tracker.Controller, logger *zap.Logger, initial model.Filter) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()
	return Model{
		currentView: ViewList,
		ctrl:        ctrl,
		log:         logger,
		keys:        k,
		taskList:    tasklist.New(ctrl, initial, 80, 24),
		taskForm:    taskform.New(80, 24),
		statsView:   stats.New(tracker.Statistics{}, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		layout:      ui.NewLayout(80, 24),
	}
}

// Init loads the task list and resumes an open session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.taskList.Init(),
		m.resume(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		m.statsView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case tasklist.TasksLoadedMsg:
		if msg.Err != nil {
			m.setError("Could not load tasks: %v", msg.Err)
		}
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case taskform.SubmitMsg:
		m.currentView = ViewList
		return m, m.addTask(msg.Fields)

	case taskform.CancelMsg:
		m.currentView = ViewList
		m.setStatus("Add cancelled")
		return m, nil

	case taskAddedMsg:
		if msg.err != nil {
			if model.IsValidationError(msg.err) {
				m.setError("Not added: %v", msg.err)
			} else {
				m.setError("Could not add task: %v", msg.err)
			}
			return m, nil
		}
		m.setStatus("Added %q (%d min)", msg.task.Name, msg.task.TimeSpent)
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(tasklist.TasksLoadedMsg{Tasks: msg.tasks, Filter: model.AllTasks})
		return m, cmd

	case taskDeletedMsg:
		if msg.err != nil {
			m.setError("Could not delete %q: %v", msg.task.Name, msg.err)
			return m, m.taskList.Reload()
		}
		m.setStatus("Deleted %q", msg.task.Name)
		m.syncActive()
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(tasklist.TasksLoadedMsg{Tasks: msg.tasks, Filter: msg.filter})
		return m, cmd

	case trackingChangedMsg:
		if msg.err != nil {
			m.setError("%s", trackingError(msg.err))
			m.syncActive()
			return m, nil
		}
		m.syncActive()
		if msg.started {
			m.setStatus("Tracking %q", m.active.TaskName)
			return m, m.startTicking(msg.session.StartTime)
		}
		m.setStatus("Stopped after %s", time.Duration(msg.session.Duration)*time.Second)
		return m, nil

	case resumedMsg:
		if msg.err != nil {
			m.setError("Could not resume tracking: %v", msg.err)
			return m, nil
		}
		if msg.active == nil {
			return m, nil
		}
		m.syncActive()
		m.setStatus("Resumed tracking %q", msg.active.TaskName)
		return m, m.startTicking(time.Now())

	case tickMsg:
		if msg.id != m.tickID || m.active == nil {
			return m, nil
		}
		m.clock = msg.time
		m.taskList.Tick(msg.time)
		return m, tick(msg.id)

	case statsLoadedMsg:
		if msg.err != nil {
			m.setError("Could not load statistics: %v", msg.err)
			return m, nil
		}
		m.statsView = stats.New(msg.stats, m.keys, m.layout.ContentWidth(), m.layout.ContentHeight())
		m.previousView = m.currentView
		m.currentView = ViewStats
		return m, nil

	case stats.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			m.log.Warn("loading categories", zap.Error(msg.err))
		}
		m.prompt = newCategoryPrompt(msg.categories, m.taskList.Filter(), m.layout.ContentWidth())
		m.currentView = ViewPrompt
		return m, m.prompt.form.Init()

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.currentView {
		case ViewList:
			return m.handleListKeys(msg)
		case ViewHelp:
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleListKeys processes keys while the task list has focus.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.clearStatus()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		return m.openForm()

	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()

	case key.Matches(msg, m.keys.Track):
		task, ok := m.taskList.SelectedTask()
		if !ok {
			m.setError("Select a task to track first")
			return m, nil
		}
		return m, m.toggleTracking(task.ID)

	case key.Matches(msg, m.keys.Stats):
		return m, m.loadStats()

	case key.Matches(msg, m.keys.CycleFilter):
		return m, m.taskList.LoadTasks(tasklist.NextFilter(m.taskList.Filter()))

	case key.Matches(msg, m.keys.CategoryFilter):
		return m, m.loadCategories()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.taskList.Reload()

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus()
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewForm
	return m, m.taskForm.Start()
}

// confirmDelete asks for confirmation before anything is removed.
func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	task, ok := m.taskList.SelectedTask()
	if !ok {
		m.setError("Select a task to delete first")
		return m, nil
	}
	pending, err := m.ctrl.PrepareDelete(task.ID)
	if err != nil {
		m.setError("Select a task to delete first")
		return m, nil
	}
	m.prompt = newDeletePrompt(pending, m.layout.ContentWidth())
	m.previousView = ViewList
	m.currentView = ViewPrompt
	return m, m.prompt.form.Init()
}

// updatePrompt routes messages to the open prompt and acts on its answer.
func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.prompt == nil {
		m.currentView = ViewList
		return m, nil
	}

	done, aborted, cmd := m.prompt.update(msg)
	if !done {
		return m, cmd
	}

	p := m.prompt
	m.prompt = nil
	m.currentView = ViewList

	switch p.kind {
	case promptDelete:
		if aborted || !p.values.confirm {
			m.setStatus("Delete cancelled")
			return m, nil
		}
		return m, m.deleteTask(p.pending)
	case promptCategory:
		if aborted {
			return m, nil
		}
		f := model.AllTasks
		if p.values.category != "" {
			f = model.CategoryFilter(p.values.category)
		}
		return m, m.taskList.LoadTasks(f)
	}
	return m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewPrompt:
		return m.updatePrompt(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Task Logger", m.trackingStatus())
	content := m.renderContent()

	var statusBar string
	switch {
	case m.status != "" && m.statusErr:
		statusBar = m.layout.RenderErrorBar(m.status)
	case m.status != "":
		statusBar = m.layout.RenderStatusBar(m.status)
	default:
		statusBar = m.layout.RenderStatusBar(m.keyHints())
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewForm:
		return m.taskForm.View()
	case ViewStats:
		return m.statsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewPrompt:
		if m.prompt != nil {
			return m.prompt.view()
		}
		return m.taskList.View()
	default:
		return ""
	}
}

// trackingStatus describes the live timer for the header.
func (m Model) trackingStatus() string {
	if m.active == nil {
		return "not tracking"
	}
	elapsed := m.active.Session.Elapsed(m.clock)
	return fmt.Sprintf("▶ %s %s", m.active.TaskName, theme.FormatElapsed(elapsed))
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewForm:
		return "enter next/submit | esc cancel"
	case ViewStats:
		return "j/k scroll | esc back"
	case ViewPrompt:
		return "←/→ choose | enter confirm | esc cancel"
	default:
		return "q quit | ? help | n add | d delete | enter timer | f filter | c category | s stats"
	}
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	verb, arg := command.Parse(cmd)
	switch verb {
	case "add", "new":
		return m.openForm()
	case "delete", "rm":
		return m.confirmDelete()
	case "stats", "statistics":
		return m, m.loadStats()
	case "start", "track":
		task, ok := m.taskList.SelectedTask()
		if !ok {
			m.setError("Select a task to track first")
			return m, nil
		}
		if m.active != nil {
			m.setError("Already tracking %q", m.active.TaskName)
			return m, nil
		}
		return m, m.toggleTracking(task.ID)
	case "stop":
		return m, m.stopTracking()
	case "filter":
		kind, err := model.ParseFilterKind(arg)
		if err != nil {
			m.setError("%v", err)
			return m, nil
		}
		if kind == model.FilterCategory {
			return m, m.loadCategories()
		}
		return m, m.taskList.LoadTasks(model.Filter{Kind: kind})
	case "category":
		if arg == "" {
			return m, m.loadCategories()
		}
		return m, m.taskList.LoadTasks(model.CategoryFilter(arg))
	case "refresh":
		return m, m.taskList.Reload()
	case "help":
		m.previousView = ViewList
		m.currentView = ViewHelp
		return m, nil
	case "quit", "q":
		return m, tea.Quit
	default:
		m.setError("Unknown command %q", cmd)
		return m, nil
	}
}

// startTicking resets the live timer and schedules ticks for it.
func (m *Model) startTicking(now time.Time) tea.Cmd {
	m.tickID++
	m.clock = now
	m.taskList.Tick(now)
	return tick(m.tickID)
}

// syncActive copies the controller's tracking state into the views.
func (m *Model) syncActive() {
	m.active = m.ctrl.Active()
	m.taskList.SetActive(m.active)
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
	m.log.Warn("ui error", zap.String("message", m.status))
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// trackingError turns tracking failures into status bar text.
func trackingError(err error) string {
	switch {
	case errors.Is(err, store.ErrSessionActive):
		return fmt.Sprintf("Stop the running timer first (%v)", err)
	case errors.Is(err, tracker.ErrNotTracking):
		return "Nothing is being tracked"
	case errors.Is(err, store.ErrTaskNotFound):
		return "That task no longer exists"
	default:
		return fmt.Sprintf("Tracking failed: %v", err)
	}
}
