package tracker

import (
	"context"
	"sort"
	"time"

	"github.com/nhle/tasklogger/internal/model"
)

// recentDays bounds how many day totals Statistics reports.
const recentDays = 14

// CategoryTotal is the logged time of every task sharing a category.
type CategoryTotal struct {
	Category string
	Tasks    int
	Minutes  int
}

// Statistics is a snapshot of all stored tasks, independent of the active
// list filter.
type Statistics struct {
	Tasks        []model.Task
	TotalMinutes int
	Categories   []CategoryTotal
	Days         []model.DayTotal
	GeneratedAt  time.Time
}

// Statistics reads every task plus the recent day totals.
func (c *Controller) Statistics(ctx context.Context) (Statistics, error) {
	tasks, err := c.store.ListTasks(ctx)
	if err != nil {
		return Statistics{}, err
	}
	days, err := c.store.GetDayTotals(ctx, recentDays)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		Tasks:       tasks,
		Categories:  categoryTotals(tasks),
		Days:        days,
		GeneratedAt: c.now(),
	}
	for _, t := range tasks {
		stats.TotalMinutes += t.TimeSpent
	}
	return stats, nil
}

// categoryTotals groups case-insensitively, keeping the first spelling
// seen, and orders by minutes descending then name.
func categoryTotals(tasks []model.Task) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, t := range tasks {
		key := model.FoldCategory(t.Category)
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, CategoryTotal{Category: t.CategoryLabel()})
		}
		totals[i].Tasks++
		totals[i].Minutes += t.TimeSpent
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Minutes != totals[j].Minutes {
			return totals[i].Minutes > totals[j].Minutes
		}
		return model.FoldCategory(totals[i].Category) < model.FoldCategory(totals[j].Category)
	})
	return totals
}
