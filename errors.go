package main

import "fmt"

// AuthenticationError means the post-login marker never appeared, even after
// the single reload-and-retry. Fatal; the flow stops here.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// NavigationError means an expected navigation marker or surface never
// materialized after login.
type NavigationError struct {
	Step string
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed at %s: %v", e.Step, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// DaySelectionError is raised only after every attempt is exhausted.
// Transient absence of the day anchor during the retry loop is not an error.
type DaySelectionError struct {
	Day      int
	Month    int
	Attempts int
}

func (e *DaySelectionError) Error() string {
	return fmt.Sprintf("could not click day %d (month %d) after %d attempts", e.Day, e.Month, e.Attempts)
}

// AllSlotsFullError means every candidate slot reported disabled: the day is
// legitimately fully booked, nothing malfunctioned.
type AllSlotsFullError struct{}

func (e *AllSlotsFullError) Error() string {
	return "all slots disabled/full; no booking submitted"
}

// NoSlotAvailableError means every candidate that was actually attempted
// threw during select or confirm. It wraps the last failure so the
// submission fault is distinguishable from a fully booked day.
type NoSlotAvailableError struct {
	Last error
}

func (e *NoSlotAvailableError) Error() string {
	return fmt.Sprintf("all slot attempts failed; last error: %v", e.Last)
}

func (e *NoSlotAvailableError) Unwrap() error { return e.Last }
