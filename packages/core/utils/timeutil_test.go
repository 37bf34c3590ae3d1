package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, date.Year())
	assert.Equal(t, time.June, date.Month())
	assert.Equal(t, 10, date.Day())

	_, err = ParseDate("10/06/2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"18:00", "18:00:00"},
		{"18:30", "18:30:00"},
		{"09:05:30", "09:05:30"},
		{"0:00", "00:00:00"},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}

	for _, bad := range []string{"24:00", "18:60", "banana", "18", "18:00x"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestClockMinutes(t *testing.T) {
	assert.Equal(t, 0, ClockMinutes("00:00:00"))
	assert.Equal(t, 18*60+30, ClockMinutes("18:30:00"))
	assert.Equal(t, 18*60+30, ClockMinutes("18:30:59"))
}

func TestFloorCeilHour(t *testing.T) {
	assert.Equal(t, "18:00:00", FloorHour("18:30:00"))
	assert.Equal(t, "18:00:00", FloorHour("18:00:00"))
	assert.Equal(t, "19:00:00", CeilHour("18:30:00"))
	assert.Equal(t, "19:00:00", CeilHour("18:00:01"))
	assert.Equal(t, "18:00:00", CeilHour("18:00:00"))
	assert.Equal(t, "24:00:00", CeilHour("23:15:00"))
}

func TestOverlapsHalfOpen(t *testing.T) {
	// Touching endpoints do not overlap.
	assert.False(t, Overlaps("18:00:00", "19:00:00", "19:00:00", "20:00:00"))
	assert.False(t, Overlaps("19:00:00", "20:00:00", "18:00:00", "19:00:00"))

	assert.True(t, Overlaps("18:00:00", "19:00:00", "18:30:00", "19:30:00"))
	assert.True(t, Overlaps("18:00:00", "20:00:00", "18:30:00", "19:00:00"))
	assert.True(t, Overlaps("18:30:00", "19:00:00", "18:00:00", "20:00:00"))
	assert.False(t, Overlaps("08:00:00", "09:00:00", "18:00:00", "19:00:00"))
}

func TestNextWeekday(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday, err := ParseDate("2025-06-02")
	require.NoError(t, err)

	assert.Equal(t, monday, NextWeekday(monday, time.Monday))
	assert.Equal(t, monday.AddDate(0, 0, 5), NextWeekday(monday, time.Saturday))
	assert.Equal(t, monday.AddDate(0, 0, 6), NextWeekday(monday, time.Sunday))
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
}
