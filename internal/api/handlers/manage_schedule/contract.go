package manage_schedule

import (
	"context"

	scheduleModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateWindow(ctx context.Context, req *scheduleModels.CreateWindowRequest) (*scheduleModels.WindowResponse, error)
	DeleteWindow(ctx context.Context, id string) error
	BlockDate(ctx context.Context, req *scheduleModels.BlockDateRequest) (*scheduleModels.BlockedDateResponse, error)
	UnblockDate(ctx context.Context, id string) error
	BlockSlot(ctx context.Context, req *scheduleModels.BlockSlotRequest) (*scheduleModels.BlockedSlotResponse, error)
	UnblockSlot(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
