package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	availabilityRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/availability"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/schedule/models"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// Service админский сервис управления расписанием:
// недельные окна доступности, блокировки дней и интервалов
type Service struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	slotCache        SlotCache
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
// slotCache опционален (nil — кэширование отключено)
func NewService(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	slotCache SlotCache,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		slotCache:        slotCache,
		logger:           logger,
	}
}

// GetSchedule возвращает полную картину расписания:
// все окна, заблокированные дни и заблокированные интервалы
func (s *Service) GetSchedule(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching full schedule")

	windows, err := s.availabilityRepo.ListWindows(ctx)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list windows: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to list windows: %v", ErrInternal, err)
	}

	blockedDates, err := s.availabilityRepo.ListBlockedDates(ctx)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list blocked dates: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to list blocked dates: %v", ErrInternal, err)
	}

	blockedSlots, err := s.availabilityRepo.ListBlockedSlots(ctx)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list blocked slots: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to list blocked slots: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(windows, blockedDates, blockedSlots), nil
}

// CreateWindow создает недельное окно доступности
// Пересечение с существующим активным окном того же дня недели отклоняется
// на записи: генератор слотов предполагает непересекающиеся окна
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: dayOfWeek=%d, %s-%s", req.DayOfWeek, req.StartTime, req.EndTime)

	if req.DayOfWeek < domain.MinDayOfWeek || req.DayOfWeek > domain.MaxDayOfWeek {
		return nil, fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	start, err := timeutil.Parse(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := timeutil.Parse(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	existing, err := s.availabilityRepo.GetActiveWindows(ctx, req.DayOfWeek)
	if err != nil {
		s.logger.Error("CreateWindow: failed to fetch existing windows: %v", err)
		return nil, fmt.Errorf("%w: CreateWindow - failed to fetch existing windows: %v", ErrInternal, err)
	}

	candidate := domain.TimeRange{Start: start, End: end}
	for _, w := range existing {
		if candidate.Overlaps(w.Range()) {
			s.logger.Warn("CreateWindow: overlap with window id=%s (%s-%s)", w.ID, w.StartTime, w.EndTime)
			return nil, fmt.Errorf("%w: overlaps window %s-%s", ErrWindowOverlap, w.StartTime, w.EndTime)
		}
	}

	window, err := s.availabilityRepo.CreateWindow(ctx, &domain.WeeklyWindow{
		DayOfWeek: req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	})
	if err != nil {
		s.logger.Error("CreateWindow: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	// Новое окно меняет слоты всех будущих дат этого дня недели
	s.invalidateAll(ctx)

	s.logger.Info("CreateWindow: window id=%s created", window.ID)
	return models.FromDomainWindow(window), nil
}

// DeleteWindow удаляет окно доступности
func (s *Service) DeleteWindow(ctx context.Context, id string) error {
	s.logger.Info("DeleteWindow: window id=%s", id)

	if err := s.availabilityRepo.DeleteWindow(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%s not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.invalidateAll(ctx)
	return nil
}

// BlockDate блокирует целый день
// Уже существующие записи на этот день не отменяются автоматически:
// администратор разбирается с ними отдельно
func (s *Service) BlockDate(ctx context.Context, req *models.BlockDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("BlockDate: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	s.warnAboutExistingAppointments(ctx, req.Date, nil)

	block, err := s.availabilityRepo.CreateBlockedDate(ctx, &domain.BlockedDate{
		Date:   req.Date,
		Reason: req.Reason,
	})
	if err != nil {
		s.logger.Error("BlockDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: BlockDate - repository error: %v", ErrInternal, err)
	}

	if s.slotCache != nil {
		s.slotCache.InvalidateDate(ctx, req.Date)
	}

	s.logger.Info("BlockDate: block id=%s created for date=%s", block.ID, req.Date.Format(domain.DateFormat))
	return models.FromDomainBlockedDate(block), nil
}

// UnblockDate снимает блокировку дня
func (s *Service) UnblockDate(ctx context.Context, id string) error {
	s.logger.Info("UnblockDate: block id=%s", id)

	if err := s.availabilityRepo.DeleteBlockedDate(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("UnblockDate: repository error for block id=%s: %v", id, err)
		return fmt.Errorf("%w: UnblockDate - repository error: %v", ErrInternal, err)
	}

	s.invalidateAll(ctx)
	return nil
}

// BlockSlot блокирует интервал внутри дня
// Блокировка поверх существующих записей допустима: записи остаются в силе,
// интервал лишь исключается из будущей выдачи слотов
func (s *Service) BlockSlot(ctx context.Context, req *models.BlockSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("BlockSlot: date=%s, %s-%s", req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	start, err := timeutil.Parse(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := timeutil.Parse(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	blockedRange := domain.TimeRange{Start: start, End: end}
	s.warnAboutExistingAppointments(ctx, req.Date, &blockedRange)

	startAt, err := atTimeOfDay(req.Date, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endAt, err := atTimeOfDay(req.Date, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	block, err := s.availabilityRepo.CreateBlockedSlot(ctx, &domain.BlockedSlot{
		StartAt: startAt,
		EndAt:   endAt,
		Reason:  req.Reason,
	})
	if err != nil {
		s.logger.Error("BlockSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: BlockSlot - repository error: %v", ErrInternal, err)
	}

	if s.slotCache != nil {
		s.slotCache.InvalidateDate(ctx, req.Date)
	}

	s.logger.Info("BlockSlot: block id=%s created", block.ID)
	return models.FromDomainBlockedSlot(block), nil
}

// UnblockSlot снимает блокировку интервала
func (s *Service) UnblockSlot(ctx context.Context, id string) error {
	s.logger.Info("UnblockSlot: block id=%s", id)

	if err := s.availabilityRepo.DeleteBlockedSlot(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("UnblockSlot: repository error for block id=%s: %v", id, err)
		return fmt.Errorf("%w: UnblockSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidateAll(ctx)
	return nil
}

// warnAboutExistingAppointments пишет warning, если блокировка накрывает
// активные записи. Ошибка чтения здесь не критична для самой блокировки
func (s *Service) warnAboutExistingAppointments(ctx context.Context, date time.Time, blocked *domain.TimeRange) {
	appointments, err := s.appointmentRepo.GetByDate(ctx, date, false)
	if err != nil {
		s.logger.Warn("failed to check existing appointments for date=%s: %v", date.Format(domain.DateFormat), err)
		return
	}

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if blocked != nil && !blocked.Overlaps(appt.Range()) {
			continue
		}
		s.logger.Warn("block covers active appointment id=%s (%s %s-%s)",
			appt.ID, date.Format(domain.DateFormat), appt.StartTime, appt.EndTime)
	}
}

// invalidateAll сбрасывает кэш слотов целиком
// Изменения недельных окон и снятие блокировок затрагивают множество дат
func (s *Service) invalidateAll(ctx context.Context) {
	if s.slotCache != nil {
		s.slotCache.InvalidateAll(ctx)
	}
}

func validateReason(reason *string) error {
	if reason != nil && len(*reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}
	return nil
}

// atTimeOfDay прикрепляет время суток к дате
func atTimeOfDay(date time.Time, t timeutil.TimeString) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dayStart.Add(time.Duration(minutes) * time.Minute), nil
}
