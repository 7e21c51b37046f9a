package get_available_slots

import (
	"context"
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	// GetActiveWindows получает активные еженедельные окна для дня недели
	GetActiveWindows(ctx context.Context, dayOfWeek int) ([]*domain.WeeklyWindow, error)
	// IsDateBlocked проверяет, заблокирована ли дата целиком
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
	// GetBlockedRanges получает заблокированные интервалы на дату
	GetBlockedRanges(ctx context.Context, date time.Time) ([]domain.TimeRange, error)
}

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	// GetByDate получает записи на дату (отменённые не занимают слот)
	GetByDate(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// SlotCache интерфейс кэша сгенерированных списков слотов
type SlotCache interface {
	GetSlots(ctx context.Context, date time.Time, serviceID string) ([]domain.Slot, bool)
	SetSlots(ctx context.Context, date time.Time, serviceID string, slots []domain.Slot)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
