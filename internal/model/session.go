package model

import "time"

// DayLayout is the format of DayTotal.Date.
const DayLayout = "2006-01-02"

// Session is one start/stop tracking interval for a task.
// Its lifecycle is bound to the parent task (CASCADE delete).
type Session struct {
	ID        string     `json:"id" db:"id"`
	TaskID    int64      `json:"task_id" db:"task_id"`
	StartTime time.Time  `json:"start_time" db:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty" db:"end_time"`

	// Duration is the closed session length in seconds. Zero while open.
	Duration int64 `json:"duration" db:"duration"`
}

// IsOpen reports whether the session is still running.
func (s Session) IsOpen() bool {
	return s.EndTime == nil
}

// Elapsed returns the tracked time, measured up to now for open sessions.
func (s Session) Elapsed(now time.Time) time.Duration {
	if s.EndTime != nil {
		return time.Duration(s.Duration) * time.Second
	}
	d := now.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// DayTotal is the tracked time for one local calendar day.
type DayTotal struct {
	Date          string `json:"date" db:"date"`
	TotalDuration int64  `json:"total_duration" db:"total_duration"`
}

// Total returns TotalDuration as a time.Duration.
func (d DayTotal) Total() time.Duration {
	return time.Duration(d.TotalDuration) * time.Second
}

// SplitByDay divides the interval [start, end) at midnight boundaries of
// loc and returns the whole seconds that fall on each day, keyed by
// DayLayout dates, in chronological order.
func SplitByDay(start, end time.Time, loc *time.Location) []DayTotal {
	if loc == nil {
		loc = time.Local
	}
	start = start.Truncate(time.Second).In(loc)
	end = end.Truncate(time.Second).In(loc)
	if !end.After(start) {
		return nil
	}

	var out []DayTotal
	cur := start
	for cur.Before(end) {
		y, m, d := cur.Date()
		next := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
		if next.After(end) {
			next = end
		}
		secs := int64(next.Sub(cur) / time.Second)
		if secs > 0 {
			out = append(out, DayTotal{Date: cur.Format(DayLayout), TotalDuration: secs})
		}
		cur = next
	}
	return out
}
