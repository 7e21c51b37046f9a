package domain

import "time"

// Service represents an offered session type (individual therapy, first
// consultation, ...). Its duration parametrizes slot length in the generator
type Service struct {
	ID               string
	Name             string
	Description      *string
	ShortDescription *string
	DurationMinutes  int
	Price            float64
	Mode             string // "online", "presencial" or "ambas"
	IsActive         bool
	SortOrder        int
	CreatedAt        time.Time
}
