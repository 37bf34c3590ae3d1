package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotSequenceOrdering(t *testing.T) {
	// 2025-06-02 is a Monday; the sequence starts on the next Saturday.
	start, err := ParseDate("2025-06-02")
	require.NoError(t, err)

	ranges := []TimeRange{
		{Start: "15:00:00", End: "16:00:00"},
		{Start: "09:00:00", End: "10:00:00"},
	}
	fields := []uint{5, 3}

	seq := NewSlotSequence(start, time.Saturday, ranges, fields)
	require.Equal(t, 4, seq.CapacityPerWeek())

	saturday := start.AddDate(0, 0, 5)

	// Ranges iterate sorted by start; fields keep caller order.
	expected := []Slot{
		{Date: saturday, Start: "09:00:00", End: "10:00:00", FieldID: 5},
		{Date: saturday, Start: "09:00:00", End: "10:00:00", FieldID: 3},
		{Date: saturday, Start: "15:00:00", End: "16:00:00", FieldID: 5},
		{Date: saturday, Start: "15:00:00", End: "16:00:00", FieldID: 3},
	}
	for _, want := range expected {
		assert.Equal(t, want, seq.Next())
	}

	// The week is exhausted; the next slot falls 7 days later.
	next := seq.Next()
	assert.Equal(t, saturday.AddDate(0, 0, 7), next.Date)
	assert.Equal(t, "09:00:00", next.Start)
}

func TestSlotSequenceStartsOnWeekday(t *testing.T) {
	// Starting exactly on the weekday uses that same date.
	saturday, err := ParseDate("2025-06-07")
	require.NoError(t, err)

	seq := NewSlotSequence(saturday, time.Saturday, []TimeRange{{Start: "10:00:00", End: "11:00:00"}}, []uint{1})
	assert.Equal(t, saturday, seq.Next().Date)
}

func TestSlotSequenceAdvanceWeek(t *testing.T) {
	start, err := ParseDate("2025-06-02")
	require.NoError(t, err)

	ranges := []TimeRange{{Start: "09:00:00", End: "10:00:00"}, {Start: "11:00:00", End: "12:00:00"}}
	seq := NewSlotSequence(start, time.Sunday, ranges, []uint{1})

	first := seq.Next()
	seq.AdvanceWeek()

	// A partially used week is abandoned.
	second := seq.Next()
	assert.Equal(t, first.Date.AddDate(0, 0, 7), second.Date)
	assert.Equal(t, "09:00:00", second.Start)

	// On a fresh bucket AdvanceWeek is a no-op.
	seq.AdvanceWeek()
	seq.AdvanceWeek()
	third := seq.Next()
	assert.Equal(t, second.Date.AddDate(0, 0, 7), third.Date)
}

func TestSlotSequenceDoesNotMutateInputs(t *testing.T) {
	start, err := ParseDate("2025-06-02")
	require.NoError(t, err)

	ranges := []TimeRange{
		{Start: "15:00:00", End: "16:00:00"},
		{Start: "09:00:00", End: "10:00:00"},
	}
	NewSlotSequence(start, time.Monday, ranges, []uint{1, 2})

	assert.Equal(t, "15:00:00", ranges[0].Start)
}
