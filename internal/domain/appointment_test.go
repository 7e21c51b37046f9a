package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, ValidStatus(s), "status %s must be valid", s)
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestAppointment_ActiveAndCancelledAreComplementary(t *testing.T) {
	for _, s := range AllStatuses {
		a := &Appointment{Status: s}
		assert.Equal(t, a.IsCancelled(), !a.IsActive(), "status %s", s)
	}

	cancelled := &Appointment{Status: StatusCancelled}
	assert.True(t, cancelled.IsCancelled())
	assert.False(t, cancelled.IsActive())
}
