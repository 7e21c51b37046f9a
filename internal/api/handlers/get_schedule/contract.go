package get_schedule

import (
	"context"

	scheduleModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context) (*scheduleModels.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
