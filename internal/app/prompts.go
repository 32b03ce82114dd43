package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/theme"
	"github.com/nhle/tasklogger/internal/tracker"
)

// promptKind tells which question the active prompt form answers.
type promptKind int

const (
	promptDelete promptKind = iota
	promptCategory
)

// promptValues holds form values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type promptValues struct {
	confirm  bool
	category string
}

// prompt is a single-question huh form shown over the task list.
type prompt struct {
	kind    promptKind
	form    *huh.Form
	values  *promptValues
	pending tracker.PendingDelete
}

// newDeletePrompt asks the user to confirm a prepared delete.
func newDeletePrompt(p tracker.PendingDelete, width int) *prompt {
	values := &promptValues{}
	task := p.Task()
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", task.Name)).
				Description(fmt.Sprintf("%d minutes · %s. This cannot be undone.",
					task.TimeSpent, task.CategoryLabel())).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&values.confirm),
		),
	).WithWidth(promptWidth(width))

	return &prompt{kind: promptDelete, form: form, values: values, pending: p}
}

// newCategoryPrompt asks for a category, suggesting the known ones.
func newCategoryPrompt(categories []string, current model.Filter, width int) *prompt {
	values := &promptValues{}
	if current.Kind == model.FilterCategory {
		values.category = current.Category
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Filter by category").
				Description("Matching ignores case. Leave empty to show all tasks.").
				Suggestions(categories).
				Value(&values.category),
		),
	).WithWidth(promptWidth(width))

	return &prompt{kind: promptCategory, form: form, values: values}
}

// update forwards msg to the form and reports whether it finished.
func (p *prompt) update(msg tea.Msg) (done bool, aborted bool, cmd tea.Cmd) {
	mdl, cmd := p.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		p.form = f
	}
	switch p.form.State {
	case huh.StateCompleted:
		return true, false, nil
	case huh.StateAborted:
		return true, true, nil
	}
	return false, false, cmd
}

func (p *prompt) view() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(
		theme.PanelStyle.Render(p.form.View()),
	)
}

func promptWidth(width int) int {
	w := width - 8
	if w < 30 {
		w = 30
	}
	if w > 70 {
		w = 70
	}
	return w
}
