package utils

import (
	"strings"
	"time"
)

const (
	LayoutDate     = "2006-01-02"
	LayoutMonth    = "2006-01"
	layoutDateTime = "2006-01-02 15:04:05"
)

// Today returns the local calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(LayoutDate)
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(LayoutDate, strings.TrimSpace(s), time.Local)
}

// DateOrToday normalises a form date; malformed input becomes today.
func DateOrToday(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return Today()
	}
	return t.Format(LayoutDate)
}

// DateOrEmpty normalises an optional filter bound; malformed input is dropped.
func DateOrEmpty(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return ""
	}
	return t.Format(LayoutDate)
}

// ParseMonthOrCurrent reads YYYY-MM and falls back to the current month.
// It returns the first day of the month.
func ParseMonthOrCurrent(s string) time.Time {
	t, err := time.ParseInLocation(LayoutMonth, strings.TrimSpace(s), time.Local)
	if err != nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	}
	return t
}

// MonthBounds returns the first and last day (inclusive) of the month of t.
func MonthBounds(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(LayoutDate), last.Format(LayoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
