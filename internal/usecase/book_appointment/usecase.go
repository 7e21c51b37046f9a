package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	appointmentRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/appointment"
	serviceRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/service"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/integrations/mailer"
)

// UseCase создание записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	txManager       TransactionManager
	slotCache       SlotCache
	mailerClient    MailerClient
	timeProvider    TimeProvider
	log             Logger
}

// NewUseCase создает новый экземпляр UseCase
// slotCache и mailerClient опциональны (nil — функциональность отключена)
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	slotCache SlotCache,
	mailerClient MailerClient,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		txManager:       txManager,
		slotCache:       slotCache,
		mailerClient:    mailerClient,
		timeProvider:    timeProvider,
		log:             log,
	}
}

// Execute создает запись на приём
// Проверка пересечения и вставка выполняются в одной serializable-транзакции
// с блокировкой строк даты, поэтому из двух гонящихся запросов на один слот
// ровно один получает ErrSlotTaken
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.log.Info("Booking appointment: serviceID=%s, date=%s, start=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.log.Warn("Booking validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return nil, fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, req.Date.Format(domain.DateFormat))
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: serviceID=%s", ErrServiceNotFound, req.ServiceID)
		}
		uc.log.Error("Failed to get service %s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.DurationMinutes < domain.MinServiceDurationMinutes || service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: serviceID=%s, duration=%d", ErrInvalidDuration, service.ID, service.DurationMinutes)
	}

	endTime, err := computeEndTime(req.StartTime, service.DurationMinutes)
	if err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		ServiceID:       req.ServiceID,
		AppointmentDate: req.Date,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		ClientName:      req.ClientName,
		ClientPronouns:  req.ClientPronouns,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		ClientMessage:   req.ClientMessage,
		Modality:        req.Modality,
		Status:          domain.StatusPending,
		ConsentAccepted: req.ConsentAccepted,
	}

	var created *domain.Appointment
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// GetByDate в транзакции берет FOR UPDATE на записи даты
		existing, err := uc.appointmentRepo.GetByDate(txCtx, req.Date, false)
		if err != nil {
			return fmt.Errorf("failed to get appointments for date: %w", err)
		}

		if conflict := findOverlapping(req.StartTime, endTime, existing); conflict != nil {
			return fmt.Errorf("%w: conflicts with appointment %s", ErrSlotTaken, conflict.ID)
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrSlotTaken) || errors.Is(txErr, appointmentRepo.ErrSlotTaken) {
			uc.log.Warn("Slot taken: date=%s, start=%s", req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, fmt.Errorf("%w: date=%s, start=%s", ErrSlotTaken, req.Date.Format(domain.DateFormat), req.StartTime)
		}
		uc.log.Error("Booking transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.log.Info("Appointment created: id=%s, date=%s, slot=%s-%s",
		created.ID, req.Date.Format(domain.DateFormat), created.StartTime, created.EndTime)

	if uc.slotCache != nil {
		uc.slotCache.InvalidateDate(ctx, req.Date)
	}

	if uc.mailerClient != nil {
		payload := map[string]interface{}{
			"client_name":  created.ClientName,
			"service_name": service.Name,
			"date":         req.Date.Format(domain.DateFormat),
			"start_time":   created.StartTime.String(),
			"end_time":     created.EndTime.String(),
			"modality":     string(created.Modality),
		}
		if err := uc.mailerClient.SendWithGracefulDegradation(ctx, mailer.TemplateBookingReceived, created.ClientEmail, payload); err != nil {
			// Деградация рассылки не проваливает бронирование
			uc.log.Warn("Booking confirmation mail degraded: %v", err)
		}
	}

	return &Response{
		ID:              created.ID,
		ServiceID:       created.ServiceID,
		ServiceName:     service.Name,
		AppointmentDate: created.AppointmentDate,
		StartTime:       created.StartTime,
		EndTime:         created.EndTime,
		ClientName:      created.ClientName,
		ClientEmail:     created.ClientEmail,
		Modality:        created.Modality,
		Status:          created.Status,
		CreatedAt:       created.CreatedAt,
	}, nil
}
