// Package timeago renders past instants as short relative strings.
package timeago

import (
	"fmt"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// Format renders t relative to now using whole elapsed minutes.
// Timestamps in the future render as "Just now".
func Format(t, now time.Time) string {
	minutes := int64(now.Sub(t) / time.Minute)

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < minutesPerHour:
		return fmt.Sprintf("%dm ago", minutes)
	case minutes < minutesPerDay:
		return fmt.Sprintf("%dh ago", minutes/minutesPerHour)
	default:
		return fmt.Sprintf("%dd ago", minutes/minutesPerDay)
	}
}

// Since is Format against the current wall clock.
func Since(t time.Time) string {
	return Format(t, time.Now())
}
