package main

import (
	"fmt"
	"time"
)

// nextMidnight returns the next occurrence of local midnight after now.
func nextMidnight(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
}

// secondsUntilMidnight returns the seconds remaining until the next local
// midnight, clamped to zero.
func secondsUntilMidnight(now time.Time) float64 {
	remaining := nextMidnight(now).Sub(now).Seconds()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// formatCountdown renders a duration as HH:MM:SS for the live countdown.
// Negative durations render as 00:00:00.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
