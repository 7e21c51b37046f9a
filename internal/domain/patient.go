package domain

import "time"

// Patient is a clinical patient record kept by the practice.
// An appointment may optionally be linked to one patient
type Patient struct {
	ID            string
	FullName      string
	PreferredName *string
	Pronouns      *string
	Email         *string
	Phone         *string
	IsActive      bool
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PatientDraft carries the fields accepted when creating a patient record
type PatientDraft struct {
	FullName      string
	PreferredName *string
	Pronouns      *string
	Email         *string
	Phone         *string
	Notes         *string
}
