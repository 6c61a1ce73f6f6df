package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func titleSelectorFor(day, month int) string {
	return fmt.Sprintf(`%s a[title="%d %s"]`, selCalendar, day, monthName("it", month))
}

// calendarSurface simulates the portal calendar: the day anchor exists only
// once the surface has been reloaded enough times. availableAfter < 0 means
// the day never becomes selectable.
func calendarSurface(day, month, availableAfter int, anchor *fakeElement) *fakeSurface {
	surface := newFakeSurface()
	surface.locate = func(selector string) ([]Element, error) {
		if availableAfter < 0 || surface.reloads < availableAfter {
			return nil, nil
		}
		if selector == titleSelectorFor(day, month) {
			return []Element{anchor}, nil
		}
		return nil, nil
	}
	return surface
}

func TestClickDayFirstRender(t *testing.T) {
	anchor := &fakeElement{text: "25"}
	surface := calendarSurface(25, 1, 0, anchor)

	if err := clickDayWithRetry(surface, 25, 1, 5, 0, "it", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if anchor.clicks != 1 {
		t.Errorf("expected exactly one click, got %d", anchor.clicks)
	}
	if surface.reloads != 0 {
		t.Errorf("expected no reloads, got %d", surface.reloads)
	}
}

func TestClickDaySucceedsAfterReloads(t *testing.T) {
	// Anchor appears only after 3 reloads: selection must succeed on
	// attempt 4 and not reload again afterwards.
	anchor := &fakeElement{text: "25"}
	surface := calendarSurface(25, 1, 3, anchor)

	var lines []string
	err := clickDayWithRetry(surface, 25, 1, 6, 0, "it", func(msg string) {
		lines = append(lines, msg)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if surface.reloads != 3 {
		t.Errorf("expected exactly 3 reloads, got %d", surface.reloads)
	}
	if anchor.clicks != 1 {
		t.Errorf("expected exactly one click, got %d", anchor.clicks)
	}

	found := false
	for _, line := range lines {
		if strings.Contains(line, "Clicked day 25 on attempt 4.") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected success on attempt 4, log was %v", lines)
	}
}

func TestClickDayNeverAvailable(t *testing.T) {
	surface := calendarSurface(25, 1, -1, nil)

	err := clickDayWithRetry(surface, 25, 1, 4, 0, "it", nil)

	var dayErr *DaySelectionError
	if !errors.As(err, &dayErr) {
		t.Fatalf("expected DaySelectionError, got %v", err)
	}
	if dayErr.Day != 25 || dayErr.Month != 1 || dayErr.Attempts != 4 {
		t.Errorf("error carries %d/%d after %d attempts, expected 25/1 after 4", dayErr.Day, dayErr.Month, dayErr.Attempts)
	}
	// One reload per exhausted attempt, never fewer, never more.
	if surface.reloads != 4 {
		t.Errorf("expected exactly 4 reloads, got %d", surface.reloads)
	}
}

func TestClickDayRetriesAfterClickFailure(t *testing.T) {
	anchor := &fakeElement{text: "25", failFirst: 1}
	surface := calendarSurface(25, 1, 0, anchor)

	if err := clickDayWithRetry(surface, 25, 1, 5, 0, "it", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if anchor.clicks != 2 {
		t.Errorf("expected the click to be retried once, got %d clicks", anchor.clicks)
	}
	if surface.reloads != 1 {
		t.Errorf("expected one reload after the failed click, got %d", surface.reloads)
	}
}

func TestFindDayAnchorLooseFallback(t *testing.T) {
	// No title match anywhere, but the calendar holds plain anchors; the
	// one whose text is the bare day number must be picked.
	day24 := &fakeElement{text: "24"}
	day25 := &fakeElement{text: " 25 "}
	surface := newFakeSurface()
	surface.locate = func(selector string) ([]Element, error) {
		if selector == selCalendar+" a" {
			return []Element{day24, day25}, nil
		}
		return nil, nil
	}

	anchor, err := findDayAnchor(surface, 25, 1, "it")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if anchor != day25 {
		t.Error("expected the loose text match to pick the day-25 anchor")
	}
}

func TestFindDayAnchorPrefersTitleMatch(t *testing.T) {
	titled := &fakeElement{text: "25"}
	loose := &fakeElement{text: "25"}
	surface := newFakeSurface()
	surface.locate = func(selector string) ([]Element, error) {
		switch selector {
		case titleSelectorFor(25, 6):
			return []Element{titled}, nil
		case selCalendar + " a":
			return []Element{loose}, nil
		}
		return nil, nil
	}

	anchor, err := findDayAnchor(surface, 25, 6, "it")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if anchor != titled {
		t.Error("title match should win over the loose text match")
	}
}
