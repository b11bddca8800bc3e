// ABOUTME: Duration formatting utilities for human readable ages
// ABOUTME: Used for article publish times and cache age output

package duration

import (
	"fmt"
	"strings"
	"time"
)

// Humanize renders d with its two most significant units, e.g. "2 hours 5 minutes"
func Humanize(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	seconds := int(d / time.Second)
	if seconds < 60 {
		return plural(seconds, "second")
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	parts := []string{}
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 && days == 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}

	return strings.Join(parts, " ")
}

// Ago describes how long before now t happened. The zero time renders as "unknown".
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	if t.After(now) {
		return "just now"
	}
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	}
	return Humanize(d) + " ago"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
