package domain

import (
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Modality represents how the session takes place
type Modality string

const (
	ModalityOnline     Modality = "online"
	ModalityPresencial Modality = "presencial"
)

// Appointment represents a booked session on the practice calendar
type Appointment struct {
	ID              string
	ServiceID       string
	AppointmentDate time.Time
	StartTime       timeutil.TimeString
	EndTime         timeutil.TimeString

	ClientName     string
	ClientPronouns *string
	ClientEmail    string
	ClientPhone    *string
	ClientMessage  *string

	Modality        Modality
	Status          AppointmentStatus
	AdminNotes      *string
	ConsentAccepted bool

	// Optional link to a clinical patient record, independent of status
	PatientID *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return !a.IsCancelled()
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Range returns the occupied time-of-day interval
func (a *Appointment) Range() TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}

// ValidStatus reports whether s is one of the four lifecycle statuses.
// Transitions themselves are unrestricted: the admin may move an appointment
// from any status to any other status
func ValidStatus(s AppointmentStatus) bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ValidModality reports whether m is a known session modality
func ValidModality(m Modality) bool {
	return m == ModalityOnline || m == ModalityPresencial
}

// AppointmentFilter filters admin appointment listings
type AppointmentFilter struct {
	Status           *AppointmentStatus // optional, nil = all statuses
	StartDate        *time.Time         // optional period start
	EndDate          *time.Time         // optional period end
	IncludeCancelled bool               // include cancelled appointments in the listing
}
