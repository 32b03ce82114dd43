package model

import (
	"fmt"
	"strings"
	"time"
)

// FilterKind is one of the fixed task list filters.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterToday
	FilterThisWeek
	FilterCategory
)

// FilterKinds lists every filter in display order.
var FilterKinds = []FilterKind{FilterAll, FilterToday, FilterThisWeek, FilterCategory}

// String returns the display label used by the filter selector.
func (k FilterKind) String() string {
	switch k {
	case FilterAll:
		return "All"
	case FilterToday:
		return "Today"
	case FilterThisWeek:
		return "This Week"
	case FilterCategory:
		return "Category"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// Filter narrows the displayed task list. Category is only meaningful for
// FilterCategory.
type Filter struct {
	Kind     FilterKind
	Category string
}

// AllTasks is the default, unfiltered view.
var AllTasks = Filter{Kind: FilterAll}

// CategoryFilter builds a category filter for the given label.
func CategoryFilter(category string) Filter {
	return Filter{Kind: FilterCategory, Category: strings.TrimSpace(category)}
}

// Label returns a short description for status lines.
func (f Filter) Label() string {
	if f.Kind == FilterCategory {
		return fmt.Sprintf("Category: %s", f.Category)
	}
	return f.Kind.String()
}

// ParseFilterKind maps user-facing names ("all", "today", "week",
// "this week", "category") to a FilterKind.
func ParseFilterKind(s string) (FilterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "today":
		return FilterToday, nil
	case "week", "this week", "this-week", "thisweek":
		return FilterThisWeek, nil
	case "category", "cat":
		return FilterCategory, nil
	default:
		return FilterAll, &ValidationError{Field: "filter", Reason: "must be one of all, today, week, category", Value: s}
	}
}

// Since returns the earliest creation time admitted by a time-window filter.
// ok is false for filters that are not time based.
func (f Filter) Since(now time.Time, weekStart time.Weekday) (since time.Time, ok bool) {
	switch f.Kind {
	case FilterToday:
		return StartOfDay(now), true
	case FilterThisWeek:
		return StartOfWeek(now, weekStart), true
	default:
		return time.Time{}, false
	}
}

// StartOfDay returns local midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the most recent weekStart day on or
// before t.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Monday, &ValidationError{Field: "week_start", Reason: "must be a weekday name", Value: s}
}
