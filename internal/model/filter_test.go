package model

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	// Wednesday afternoon.
	now := time.Date(2026, 5, 6, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		weekStart time.Weekday
		want      time.Time
	}{
		{time.Monday, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)},
		{time.Sunday, time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)},
		{time.Wednesday, time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)},
		{time.Thursday, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.weekStart.String(), func(t *testing.T) {
			if got := StartOfWeek(now, tt.weekStart); !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterSince(t *testing.T) {
	now := time.Date(2026, 5, 6, 15, 30, 0, 0, time.UTC)

	since, ok := Filter{Kind: FilterToday}.Since(now, time.Monday)
	if !ok || !since.Equal(time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected Today window %v %v", since, ok)
	}

	since, ok = Filter{Kind: FilterThisWeek}.Since(now, time.Monday)
	if !ok || !since.Equal(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected This Week window %v %v", since, ok)
	}

	if _, ok := AllTasks.Since(now, time.Monday); ok {
		t.Error("All is not time based")
	}
	if _, ok := CategoryFilter("Work").Since(now, time.Monday); ok {
		t.Error("Category is not time based")
	}
}

func TestParseFilterKind(t *testing.T) {
	tests := map[string]FilterKind{
		"":          FilterAll,
		"all":       FilterAll,
		"Today":     FilterToday,
		"week":      FilterThisWeek,
		"this week": FilterThisWeek,
		"category":  FilterCategory,
		"cat":       FilterCategory,
	}
	for in, want := range tests {
		got, err := ParseFilterKind(in)
		if err != nil {
			t.Errorf("ParseFilterKind(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFilterKind(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseFilterKind("yesterday"); !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestFilterLabels(t *testing.T) {
	if got := CategoryFilter("  Work ").Label(); got != "Category: Work" {
		t.Errorf("unexpected label %q", got)
	}
	if got := (Filter{Kind: FilterThisWeek}).Label(); got != "This Week" {
		t.Errorf("unexpected label %q", got)
	}
	if len(FilterKinds) != 4 {
		t.Errorf("expected exactly four filters, got %d", len(FilterKinds))
	}
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"monday": time.Monday,
		"Sun":    time.Sunday,
		" SAT ":  time.Saturday,
	} {
		got, err := ParseWeekday(in)
		if err != nil || got != want {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseWeekday("funday"); err == nil {
		t.Error("expected error for unknown weekday")
	}
}
