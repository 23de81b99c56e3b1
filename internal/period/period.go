// Package period resolves named reporting periods and explicit
// YYYY-MM-DD date pairs into concrete timestamp ranges.
package period

import (
	"errors"
	"fmt"
	"time"
)

// Named periods accepted by Resolve.
const (
	Today     = "today"
	ThisWeek  = "this_week"
	ThisMonth = "this_month"
	LastMonth = "last_month"
	ThisYear  = "this_year"
)

var (
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidRange      = errors.New("startDate must be before or equal to endDate")
)

// DateTimeLayout is the second-precision local timestamp format sales are
// stored with.
const DateTimeLayout = "2006-01-02 15:04:05"

const dateOnlyLayout = "2006-01-02"

// Range is an inclusive reporting window at second precision.
type Range struct {
	Start time.Time
	End   time.Time
}

// StartString returns the window start in the stored timestamp format.
func (r Range) StartString() string {
	return r.Start.Format(DateTimeLayout)
}

// EndString returns the window end in the stored timestamp format.
func (r Range) EndString() string {
	return r.End.Format(DateTimeLayout)
}

// Resolve builds the reporting window for a named period or an explicit
// startDate/endDate pair, evaluated against now. With both custom dates
// present the named period is ignored; with neither the period defaults
// to today. Supplying a period AND a custom range at the same time is a
// caller error validated one level up.
func Resolve(name, startDate, endDate string, now time.Time) (Range, error) {
	if startDate != "" && endDate != "" {
		return resolveCustom(startDate, endDate)
	}

	if name == "" {
		name = Today
	}

	switch name {
	case Today:
		return Range{Start: startOfDay(now), End: endOfDay(now)}, nil
	case ThisWeek:
		// ISO week: Monday through Sunday, with Sunday as day 7.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := startOfDay(now).AddDate(0, 0, -(weekday - 1))
		return Range{Start: monday, End: endOfDay(monday.AddDate(0, 0, 6))}, nil
	case ThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: first, End: endOfDay(first.AddDate(0, 1, -1))}, nil
	case LastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		return Range{Start: first, End: endOfDay(first.AddDate(0, 1, -1))}, nil
	case ThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		last := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
		return Range{Start: first, End: endOfDay(last)}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, name)
	}
}

// IsNamed reports whether name is one of the recognized period names.
func IsNamed(name string) bool {
	switch name {
	case Today, ThisWeek, ThisMonth, LastMonth, ThisYear:
		return true
	}
	return false
}

func resolveCustom(startDate, endDate string) (Range, error) {
	start, err := parseDateOnly(startDate)
	if err != nil {
		return Range{}, err
	}
	end, err := parseDateOnly(endDate)
	if err != nil {
		return Range{}, err
	}

	r := Range{Start: startOfDay(start), End: endOfDay(end)}
	if r.Start.After(r.End) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

func parseDateOnly(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateOnlyLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
	}
	return parsed, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
