package domain

// SlotStepMinutes is the fixed grid at which candidate slot start times are
// enumerated. It is a configuration constant of the practice, not derived
// from the service duration
const SlotStepMinutes = 30

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 480 // 8 hours

	MinDayOfWeek = 0 // Sunday
	MaxDayOfWeek = 6 // Saturday

	MaxClientNameLength    = 200
	MaxClientMessageLength = 2000
	MaxAdminNotesLength    = 2000
	MaxReasonLength        = 500
)

// DateFormat is the wire format for calendar dates
const DateFormat = "2006-01-02" // YYYY-MM-DD

// AllStatuses lists the four lifecycle statuses
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
