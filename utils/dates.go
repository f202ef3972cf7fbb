package utils

import (
	"errors"
	"strings"
	"time"
)

// DayLayout is the canonical wire format for calendar dates.
const DayLayout = "2006-01-02"

// DisplayDayLayout renders a calendar date for chat replies, e.g. "Sat Jun 01 2024".
const DisplayDayLayout = "Mon Jan 02 2006"

var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	DayLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"Mon Jan 02 2006",
}

// DayStart strips the time of day, keeping the calendar date as written, and returns UTC midnight.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseCalendarDate accepts the date shapes clients and the LLM produce and returns UTC midnight.
func ParseCalendarDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DayStart(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// Today returns UTC midnight of the current day according to now.
func Today(now time.Time) time.Time {
	return DayStart(now.UTC())
}

func FormatDisplayDay(t time.Time) string {
	return t.UTC().Format(DisplayDayLayout)
}
