package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDayMonth splits a "DD.MM." token into its day and month integers.
func ParseDayMonth(token string) (day, month int, err error) {
	token = strings.TrimSuffix(strings.TrimSpace(token), ".")
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed date token %q", token)
	}
	day, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed day in %q: %w", token, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed month in %q: %w", token, err)
	}
	return day, month, nil
}

// ResolveDate infers the absolute calendar date for a day/month pair that
// carries no year. Listings are a rolling window: a handful of recently past
// entries plus an open-ended future. The candidate is built in now's year and
// kept when it is not in the past, or past by at most windowDays; anything
// older resolves to the next year's occurrence.
//
// ResolveDate is a pure function of its arguments so runs with a fixed clock
// are deterministic.
func ResolveDate(day, month int, now time.Time, windowDays int) (time.Time, error) {
	candidate, err := dateInYear(day, month, now.Year(), now.Location())
	if err != nil {
		return time.Time{}, err
	}

	if month > int(now.Month()) || (month == int(now.Month()) && day >= now.Day()) {
		return candidate, nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if int(today.Sub(candidate).Hours()/24) <= windowDays {
		return candidate, nil
	}

	// Too far in the past to be data lag: next occurrence. Feb 29 may need to
	// skip ahead to the next leap year.
	for year := now.Year() + 1; ; year++ {
		next, err := dateInYear(day, month, year, now.Location())
		if err == nil {
			return next, nil
		}
		if year > now.Year()+4 {
			return time.Time{}, err
		}
	}
}

// dateInYear builds a midnight date and rejects day/month pairs that do not
// exist in that year (time.Date would silently normalize them).
func dateInYear(day, month, year int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("no such date: day %d month %d", day, month)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("no such date: %02d.%02d.%d", day, month, year)
	}
	return t, nil
}
