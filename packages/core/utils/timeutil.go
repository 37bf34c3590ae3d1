package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses an ISO date into a UTC midnight timestamp so date
// equality is safe regardless of the caller's locale.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// ParseClock validates a clock time and normalizes it to HH:MM:SS.
// Inputs come in at minute resolution; storage keeps seconds.
func ParseClock(s string) (string, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Format("15:04:05"), nil
}

// ClockMinutes converts a normalized HH:MM:SS string to minutes since
// midnight, rounding seconds down.
func ClockMinutes(s string) int {
	var h, m, sec int
	fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	return h*60 + m
}

// FloorHour rounds a clock time down to the enclosing hour.
func FloorHour(s string) string {
	var h, m, sec int
	fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	return fmt.Sprintf("%02d:00:00", h)
}

// CeilHour rounds a clock time up to the enclosing hour. An exact hour
// is returned unchanged; the end of day ceils to "24:00:00", which
// still compares correctly as a string against any HH:MM:SS value.
func CeilHour(s string) string {
	var h, m, sec int
	fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if m == 0 && sec == 0 {
		return fmt.Sprintf("%02d:00:00", h)
	}
	return fmt.Sprintf("%02d:00:00", h+1)
}

// Overlaps reports whether two half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// NextWeekday returns the first date on or after from that falls on the
// given weekday.
func NextWeekday(from time.Time, weekday time.Weekday) time.Time {
	days := (int(weekday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, days)
}

// SameDate compares two timestamps on their calendar date only.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
