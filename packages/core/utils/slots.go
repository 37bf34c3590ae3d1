package utils

import (
	"sort"
	"time"
)

// TimeRange is a weekly franja of the scheduling agenda.
type TimeRange struct {
	Start string
	End   string
}

// Slot is one assignable (date, time range, field) unit.
type Slot struct {
	Date    time.Time
	Start   string
	End     string
	FieldID uint
}

// SlotSequence lazily emits weekly recurring slots ordered by week,
// then time range (ascending start), then field (caller order). The
// sequence never ends; consumers pull as many slots as they need.
type SlotSequence struct {
	weekDate time.Time
	ranges   []TimeRange
	fields   []uint
	idx      int // position within the current week, 0..capacity-1
}

// NewSlotSequence starts a sequence on the first occurrence of weekday
// on or after startDate. Ranges are sorted by start time; field order
// is preserved as supplied.
func NewSlotSequence(startDate time.Time, weekday time.Weekday, ranges []TimeRange, fields []uint) *SlotSequence {
	sorted := make([]TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	ids := make([]uint, len(fields))
	copy(ids, fields)

	return &SlotSequence{
		weekDate: NextWeekday(startDate, weekday),
		ranges:   sorted,
		fields:   ids,
	}
}

// CapacityPerWeek is the number of slots a single week bucket holds.
func (s *SlotSequence) CapacityPerWeek() int {
	return len(s.ranges) * len(s.fields)
}

// Next returns the next slot and advances the cursor. Ranges iterate in
// the outer loop, fields in the inner one.
func (s *SlotSequence) Next() Slot {
	r := s.ranges[s.idx/len(s.fields)]
	f := s.fields[s.idx%len(s.fields)]

	slot := Slot{
		Date:    s.weekDate,
		Start:   r.Start,
		End:     r.End,
		FieldID: f,
	}

	s.idx++
	if s.idx >= s.CapacityPerWeek() {
		s.advance()
	}

	return slot
}

// AdvanceWeek moves the cursor to the start of the following week
// bucket unless it already sits on a fresh one. Consumers call it
// between rounds (and between legs) so rounds never share a week.
func (s *SlotSequence) AdvanceWeek() {
	if s.idx != 0 {
		s.advance()
	}
}

// CurrentWeek returns the date of the week bucket the cursor is in.
func (s *SlotSequence) CurrentWeek() time.Time {
	return s.weekDate
}

func (s *SlotSequence) advance() {
	s.weekDate = s.weekDate.AddDate(0, 0, 7)
	s.idx = 0
}
