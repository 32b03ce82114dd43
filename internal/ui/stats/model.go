// Package stats renders a read-only snapshot of every stored task with
// per-category and per-day totals.
package stats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklogger/internal/keys"
	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/theme"
	"github.com/nhle/tasklogger/internal/tracker"
)

// CloseMsg is emitted when the user leaves the statistics view.
type CloseMsg struct{}

// Model is the statistics view. It is built once from a snapshot and
// never refreshed.
type Model struct {
	table  table.Model
	stats  tracker.Statistics
	keys   *keys.KeyMap
	width  int
	height int
}

// Columns returns the task table columns sized for width.
func Columns(width int) []table.Column {
	nameWidth := width - 18 - 20 - 8
	if nameWidth < 16 {
		nameWidth = 16
	}
	return []table.Column{
		{Title: "Task Name", Width: nameWidth},
		{Title: "Time Spent (mins)", Width: 18},
		{Title: "Category", Width: 20},
	}
}

// Rows converts tasks into table rows in store order.
func Rows(tasks []model.Task) []table.Row {
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		rows[i] = table.Row{t.Name, strconv.Itoa(t.TimeSpent), t.Category}
	}
	return rows
}

// New builds the view from a statistics snapshot.
func New(s tracker.Statistics, k *keys.KeyMap, width, height int) Model {
	t := table.New(
		table.WithColumns(Columns(width-6)),
		table.WithRows(Rows(s.Tasks)),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height, s)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.ColorWhite).
		Background(theme.ColorBlue).
		Bold(false)
	t.SetStyles(styles)

	return Model{
		table:  t,
		stats:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Stats) {
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the statistics panel.
func (m Model) View() string {
	title := theme.TitleStyle.Render(fmt.Sprintf(
		"Statistics · %d tasks · %s logged",
		len(m.stats.Tasks), theme.FormatMinutes(m.stats.TotalMinutes),
	))

	body := m.table.View()
	if len(m.stats.Tasks) == 0 {
		body = theme.DimmedStyle.Render("No tasks recorded yet.")
	}

	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCategories(),
		"    ",
		m.renderDays(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, "", summary)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

func (m Model) renderCategories() string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("By category"))
	b.WriteString("\n")
	if len(m.stats.Categories) == 0 {
		b.WriteString(theme.DimmedStyle.Render("none"))
		return b.String()
	}
	for _, c := range m.stats.Categories {
		fmt.Fprintf(&b, "%s %s (%d)\n",
			theme.MinutesStyle.Render(fmt.Sprintf("%7s", theme.FormatMinutes(c.Minutes))),
			theme.CategoryStyle(c.Category).Render(c.Category),
			c.Tasks,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderDays() string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Tracked per day"))
	b.WriteString("\n")
	if len(m.stats.Days) == 0 {
		b.WriteString(theme.DimmedStyle.Render("no tracked sessions"))
		return b.String()
	}
	for _, d := range m.stats.Days {
		fmt.Fprintf(&b, "%s  %s\n", d.Date, theme.TimerStyle.Render(d.Total().String()))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(Columns(width - 6))
	m.table.SetHeight(tableHeight(height, m.stats))
}

// tableHeight leaves room for the title and the summary columns.
func tableHeight(height int, s tracker.Statistics) int {
	summary := len(s.Categories)
	if len(s.Days) > summary {
		summary = len(s.Days)
	}
	h := height - 10 - summary
	if h < 3 {
		h = 3
	}
	return h
}
