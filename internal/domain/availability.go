package domain

import (
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// TimeRange is a half-open [Start, End) time-of-day interval
type TimeRange struct {
	Start timeutil.TimeString
	End   timeutil.TimeString
}

// Overlaps reports strict half-open overlap; touching endpoints do not overlap
func (r TimeRange) Overlaps(other TimeRange) bool {
	return timeutil.RangesOverlap(r.Start, r.End, other.Start, other.End)
}

// WeeklyWindow is a recurring open interval on a weekday during which
// bookings may be offered. Multiple non-overlapping windows may exist per day
type WeeklyWindow struct {
	ID        string
	DayOfWeek int // 0 = Sunday .. 6 = Saturday
	StartTime timeutil.TimeString
	EndTime   timeutil.TimeString
	IsActive  bool
}

// Range returns the window as a TimeRange
func (w *WeeklyWindow) Range() TimeRange {
	return TimeRange{Start: w.StartTime, End: w.EndTime}
}

// BlockedDate marks an entire calendar date as unavailable,
// overriding all weekly windows for that date
type BlockedDate struct {
	ID        string
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// BlockedSlot marks a sub-day interval as unavailable on a specific date.
// Overlapping blocks are permitted; the effect is the union of blocked ranges
type BlockedSlot struct {
	ID        string
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string
	CreatedAt time.Time
}

// Range projects the absolute timestamps onto a time-of-day interval
func (b *BlockedSlot) Range() TimeRange {
	return TimeRange{
		Start: timeutil.New(b.StartAt),
		End:   timeutil.New(b.EndAt),
	}
}
