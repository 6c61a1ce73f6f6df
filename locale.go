package main

import "strings"

// The calendar renders each selectable day as an anchor whose title is
// "<day> <month name>" in the portal's language. The portal is Italian, but
// the month tables are keyed by locale so a test or a future portal skin can
// swap them without touching the selector logic.

var monthNames = map[string][]string{
	"it": {
		"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
		"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
	},
	"en": {
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	},
}

const defaultPortalLocale = "it"

// monthName returns the localized month name for month 1-12. Unknown locales
// fall back to Italian; an out-of-range month returns the empty string.
func monthName(locale string, month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	names, ok := monthNames[normalizeLocale(locale)]
	if !ok {
		names = monthNames[defaultPortalLocale]
	}
	return names[month-1]
}

// monthNumber resolves a localized month name (any known locale, case
// insensitive) back to 1-12, or 0 when unrecognized.
func monthNumber(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, names := range monthNames {
		for i, n := range names {
			if n == name {
				return i + 1
			}
		}
	}
	return 0
}

func normalizeLocale(locale string) string {
	// Accept forms like "it", "it_IT" or "it-IT.UTF-8".
	locale = strings.ToLower(locale)
	for _, sep := range []string{".", "_", "-"} {
		if i := strings.Index(locale, sep); i > 0 {
			locale = locale[:i]
		}
	}
	return locale
}
