package timeofday

import (
	"fmt"
	"time"
)

// FormatDuration renders d as "Xh Ym" using whole elapsed minutes.
// Negative durations render as zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int64(d / time.Minute)
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}

// FormatSpan renders the elapsed time between start and end, where a nil
// end means the span is still running at now. Malformed spans render "-".
func FormatSpan(start time.Time, end *time.Time, now time.Time) string {
	stop := now
	if end != nil {
		stop = *end
	}
	if start.IsZero() || stop.IsZero() || !stop.After(start) {
		return "-"
	}
	return FormatDuration(stop.Sub(start))
}

// FormatHours renders d as decimal hours with two places.
func FormatHours(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.2f", d.Hours())
}

// FormatTimestamp renders t for display in the local zone, or "-" for the zero time.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(Location()).Format("01/02/2006, 3:04:05 PM")
}

// FormatDateLabel turns a YYYY-MM-DD key into "Jan 02, 2006".
// Keys that do not parse are returned unchanged.
func FormatDateLabel(key string) string {
	t, err := time.ParseInLocation(DateKeyLayout, key, Location())
	if err != nil {
		return key
	}
	return t.Format("Jan 02, 2006")
}
