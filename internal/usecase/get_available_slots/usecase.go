package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	serviceRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/service"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	serviceRepo      ServiceRepository
	slotCache        SlotCache // nil = кэш отключен
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// slotCache может быть nil, если кэширование отключено конфигурацией
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	slotCache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		serviceRepo:      serviceRepo,
		slotCache:        slotCache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute вычисляет упорядоченный список доступных слотов на дату
//
// Порядок проверок фиксирован: прошедшая дата и полная блокировка дня
// дают пустой список без дальнейших вычислений; отсутствие окон на день
// недели — тоже пустой список. Некорректная длительность услуги, напротив,
// ошибка: сломанная конфигурация не должна выглядеть как занятый день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу и её длительность
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
		uc.logger.Warn("GetAvailableSlots: service id=%s has invalid duration %d",
			svc.ID, svc.DurationMinutes)
		return nil, ErrInvalidDuration
	}

	response := &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: svc.DurationMinutes,
	}

	// 3. Прошедшие даты не предлагаются
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		response.Slots = []domain.Slot{}
		return response, nil
	}

	// 4. Проверяем кэш
	if uc.slotCache != nil {
		if slots, ok := uc.slotCache.GetSlots(ctx, req.Date, req.ServiceID); ok {
			response.Slots = slots
			return response, nil
		}
	}

	// 5. Полная блокировка дня — пустой список без дальнейших вычислений
	blocked, err := uc.availabilityRepo.IsDateBlocked(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Info("GetAvailableSlots: date %s is fully blocked", req.Date.Format(domain.DateFormat))
		response.Slots = []domain.Slot{}
		return response, nil
	}

	// 6. Еженедельные окна дня недели
	windows, err := uc.availabilityRepo.GetActiveWindows(ctx, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		response.Slots = []domain.Slot{}
		return response, nil
	}

	// 7. Заблокированные интервалы и занятые записи
	blockedRanges, err := uc.availabilityRepo.GetBlockedRanges(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Генерируем слоты
	slots, err := generateSlots(windows, svc.DurationMinutes, bookedRangesOf(appointments), blockedRanges)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if uc.slotCache != nil {
		uc.slotCache.SetSlots(ctx, req.Date, req.ServiceID, slots)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%s, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	response.Slots = slots
	return response, nil
}
