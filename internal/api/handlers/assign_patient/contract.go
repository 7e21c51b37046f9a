package assign_patient

import (
	"context"

	appointmentsModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments/models"
)

type AppointmentsService interface {
	AssignPatient(ctx context.Context, appointmentID string, req *appointmentsModels.AssignPatientRequest) (*appointmentsModels.AppointmentResponse, error)
	UnassignPatient(ctx context.Context, appointmentID string) (*appointmentsModels.AppointmentResponse, error)
	CreatePatientAndAssign(ctx context.Context, appointmentID string, req *appointmentsModels.CreatePatientRequest) (*appointmentsModels.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
