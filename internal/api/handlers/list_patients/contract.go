package list_patients

import (
	"context"

	appointmentsModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments/models"
)

type AppointmentsService interface {
	ListPatients(ctx context.Context) (*appointmentsModels.PatientListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
