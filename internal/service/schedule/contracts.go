package schedule

import (
	"context"
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	GetActiveWindows(ctx context.Context, dayOfWeek int) ([]*domain.WeeklyWindow, error)
	ListWindows(ctx context.Context) ([]*domain.WeeklyWindow, error)
	CreateWindow(ctx context.Context, window *domain.WeeklyWindow) (*domain.WeeklyWindow, error)
	DeleteWindow(ctx context.Context, id string) error

	ListBlockedDates(ctx context.Context) ([]*domain.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, id string) error

	ListBlockedSlots(ctx context.Context) ([]*domain.BlockedSlot, error)
	CreateBlockedSlot(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error)
	DeleteBlockedSlot(ctx context.Context, id string) error
}

// AppointmentRepository интерфейс репозитория записей на приём
// Нужен для предупреждения о блокировке поверх существующих записей
type AppointmentRepository interface {
	GetByDate(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
}

// SlotCache интерфейс инвалидации кэша слотов
type SlotCache interface {
	InvalidateDate(ctx context.Context, date time.Time)
	InvalidateAll(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
