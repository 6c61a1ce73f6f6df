package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The server renders the target day as a plain (gray) cell until booking for
// it opens, usually at midnight. An absent anchor is therefore a transient
// condition, not an error: reload and try again until attempts run out.

const dayAnchorVisibleTimeout = 5 * time.Second

// findDayAnchor locates the day's anchor inside the calendar. It tries the
// locale-aware title match first ('25 gennaio'), then falls back to any
// calendar anchor whose text is the bare day number. Returns nil when the
// day is not selectable at all.
func findDayAnchor(surface Surface, day, month int, locale string) (Element, error) {
	titleSel := fmt.Sprintf(`%s a[title="%d %s"]`, selCalendar, day, monthName(locale, month))
	anchors, err := surface.Locate(titleSel)
	if err != nil {
		return nil, err
	}
	if len(anchors) > 0 {
		return anchors[0], nil
	}

	anchors, err = surface.Locate(selCalendar + " a")
	if err != nil {
		return nil, err
	}
	want := strconv.Itoa(day)
	for _, a := range anchors {
		text, err := a.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == want {
			return a, nil
		}
	}
	return nil, nil
}

func clickAnchor(anchor Element) error {
	if err := anchor.ScrollIntoView(); err != nil {
		return err
	}
	if err := anchor.WaitVisible(dayAnchorVisibleTimeout); err != nil {
		return err
	}
	return anchor.Click()
}

// clickDayWithRetry activates the target calendar day. One click per
// attempt; the surface is reloaded immediately whenever the anchor is
// missing or the click fails, with retryDelay bounding the reload rate.
// Fails with DaySelectionError only after every attempt is exhausted.
func clickDayWithRetry(surface Surface, day, month, attempts int, retryDelay time.Duration, locale string, log func(string)) error {
	if log == nil {
		log = func(string) {}
	}

	for i := 1; i <= attempts; i++ {
		anchor, err := findDayAnchor(surface, day, month, locale)
		switch {
		case err != nil:
			log(fmt.Sprintf("Attempt %d failed to inspect calendar (%v); reloading...", i, err))
			reloadLogged(surface, log)
		case anchor == nil:
			log(fmt.Sprintf("Attempt %d: day %d anchor not found (gray); reloading...", i, day))
			reloadLogged(surface, log)
		default:
			clickErr := clickAnchor(anchor)
			if clickErr == nil {
				log(fmt.Sprintf("Clicked day %d on attempt %d.", day, i))
				return nil
			}
			log(fmt.Sprintf("Attempt %d: click failed (%v); reloading...", i, clickErr))
			reloadLogged(surface, log)
		}
		time.Sleep(retryDelay)
	}

	return &DaySelectionError{Day: day, Month: month, Attempts: attempts}
}

func reloadLogged(surface Surface, log func(string)) {
	if err := surface.Reload(); err != nil {
		// A failed reload is itself transient; the next attempt will see
		// whatever state the page is in.
		log(fmt.Sprintf("Reload failed: %v", err))
	}
}
