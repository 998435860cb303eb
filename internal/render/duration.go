package render

import "time"

// Sentinels for the milestone table cells.
const (
	Unavailable   = "unavailable"
	StartSentinel = "START"
)

// formatDuration renders a duration rounded to whole seconds, the
// granularity the source timestamps reliably carry.
func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}

// formatTime renders an instant in the report's fixed UTC layout.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
