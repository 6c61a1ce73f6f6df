package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTargetDate parses the user-supplied target date into day and month of
// the current year. Supported forms:
//   - "25/01", "25/1"     (DD/MM)
//   - "25-01", "25-1"     (DD-MM)
//   - "25 gennaio"        (day + localized month name)
func ParseTargetDate(input string, now time.Time) (day, month int, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, 0, fmt.Errorf("empty date")
	}

	var dayStr, monthStr string
	switch {
	case strings.ContainsRune(input, '/'):
		dayStr, monthStr, _ = strings.Cut(input, "/")
	case strings.ContainsRune(input, '-'):
		dayStr, monthStr, _ = strings.Cut(input, "-")
	case strings.ContainsRune(input, ' '):
		dayStr, monthStr, _ = strings.Cut(input, " ")
	default:
		return 0, 0, fmt.Errorf("invalid date '%s': use DD/MM or 'DD monthname'", input)
	}

	day, err = strconv.Atoi(strings.TrimSpace(dayStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day in '%s'", input)
	}

	monthStr = strings.TrimSpace(monthStr)
	month, err = strconv.Atoi(monthStr)
	if err != nil {
		month = monthNumber(monthStr)
		if month == 0 {
			return 0, 0, fmt.Errorf("invalid month in '%s'", input)
		}
	}

	if err := validateDayMonth(day, month, now.Year()); err != nil {
		return 0, 0, err
	}
	return day, month, nil
}

func validateDayMonth(day, month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("day %d out of range", day)
	}
	// Reject days the month does not have (the portal would never render them).
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if d.Day() != day || d.Month() != time.Month(month) {
		return fmt.Errorf("date %d/%d does not exist", day, month)
	}
	return nil
}
