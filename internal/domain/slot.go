package domain

import "github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"

// Slot represents a bookable time-of-day interval offered to a visitor.
// Its length equals the service duration; starts are aligned to the slot grid
type Slot struct {
	Start timeutil.TimeString
	End   timeutil.TimeString
}

// Range returns the slot as a TimeRange
func (s Slot) Range() TimeRange {
	return TimeRange{Start: s.Start, End: s.End}
}
