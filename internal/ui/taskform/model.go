package taskform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/theme"
)

// SubmitMsg is dispatched when the user submits the form. Fields holds the
// raw input; validation happens in the controller.
type SubmitMsg struct {
	Fields model.TaskFields
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// Model is the Bubble Tea model for the add-task form.
type Model struct {
	form   *huh.Form
	fields *model.TaskFields // heap-allocated so huh's Value pointers survive model copies
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fields: &model.TaskFields{},
		width:  width,
		height: height,
	}
}

// Start resets the fields and builds a fresh form.
func (m *Model) Start() tea.Cmd {
	*m.fields = model.TaskFields{}
	m.form = NewForm(m.fields).
		WithShowHelp(true).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
	return m.form.Init()
}

// NewForm builds the four-field task form bound to f. The CLI runs it
// standalone.
func NewForm(f *model.TaskFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("What did you work on?").
				Value(&f.Name),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&f.Description),
			huh.NewInput().
				Title("Time Spent (mins)").
				Placeholder("e.g. 45").
				Value(&f.TimeSpent),
			huh.NewInput().
				Title("Category").
				Placeholder("Optional, e.g. Work").
				Value(&f.Category),
		),
	)
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		fields := *m.fields
		m.form = nil
		return m, func() tea.Msg { return SubmitMsg{Fields: fields} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := theme.TitleStyle.Render("New Task") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth()).WithHeight(m.formHeight())
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
