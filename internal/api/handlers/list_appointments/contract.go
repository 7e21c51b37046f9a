package list_appointments

import (
	"context"

	appointmentsModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments/models"
)

type AppointmentsService interface {
	List(ctx context.Context, req *appointmentsModels.ListAppointmentsRequest) (*appointmentsModels.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
