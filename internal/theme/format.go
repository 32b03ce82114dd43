package theme

import (
	"fmt"
	"time"
)

// FormatMinutes renders a minute count as "45m" or "2h05m".
func FormatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
}

// FormatElapsed renders a running timer as HH:MM:SS. Negative durations
// show as zero.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
