package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Name }

// Title returns the task name for the list.
func (i TaskItem) Title() string { return i.Task.Name }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{
		theme.FormatMinutes(i.Task.TimeSpent),
		i.Task.CategoryLabel(),
	}
	if i.Task.Description != "" {
		parts = append(parts, i.Task.Description)
	}
	return strings.Join(parts, " | ")
}

// timerState is shared by reference between the Model and its delegate so
// ticks are visible to the renderer without rebuilding the list.
type timerState struct {
	taskID int64
	start  time.Time
	now    time.Time
}

func (t *timerState) running(id int64) bool {
	return t != nil && t.taskID != 0 && t.taskID == id
}

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	timer *timerState
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	task := ti.Task
	isSelected := index == m.Index()

	prefix := "○"
	timer := ""
	if d.timer.running(task.ID) {
		prefix = "▶"
		timer = "  " + theme.TimerStyle.Render(theme.FormatElapsed(d.timer.now.Sub(d.timer.start)))
	}

	minutes := theme.MinutesStyle.Render(fmt.Sprintf("%6s", theme.FormatMinutes(task.TimeSpent)))
	category := theme.CategoryStyle(task.Category).Render(task.CategoryLabel())

	desc := ""
	if task.Description != "" {
		desc = "  " + theme.DimmedStyle.Render(truncate(task.Description, 40))
	}

	line := fmt.Sprintf("%s %s %s %s%s%s", prefix, minutes, task.Name, category, desc, timer)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
