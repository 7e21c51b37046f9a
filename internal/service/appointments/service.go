package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	appointmentRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/appointment"
	patientRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/patient"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/integrations/mailer"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments/models"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/ptr"
)

// Service админский сервис управления записями и пациентами
type Service struct {
	appointmentRepo AppointmentRepository
	patientRepo     PatientRepository
	serviceRepo     ServiceRepository
	txManager       TransactionManager
	slotCache       SlotCache
	mailerClient    MailerClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// slotCache и mailerClient опциональны (nil — функциональность отключена)
func NewService(
	appointmentRepo AppointmentRepository,
	patientRepo PatientRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	slotCache SlotCache,
	mailerClient MailerClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		serviceRepo:     serviceRepo,
		txManager:       txManager,
		slotCache:       slotCache,
		mailerClient:    mailerClient,
		logger:          logger,
	}
}

// List получает записи с гибкой фильтрацией
// Поддерживает фильтрацию по статусу, периоду и включение отменённых записей
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := "List: fetching appointments"
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// UpdateStatus меняет статус записи
// Переходы не ограничены: допустим любой переход между четырьмя статусами,
// в том числе из cancelled обратно в pending и из completed в cancelled.
// При переходе в confirmed или cancelled клиенту отправляется письмо
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s, new status=%s", id, req.Status)

	status, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxAdminNotesLength {
		return nil, fmt.Errorf("%w: adminNotes is too long", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status, req.AdminNotes); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Смена статуса меняет занятость слота (cancelled освобождает,
	// выход из cancelled занимает) — кэш слотов даты устаревает
	if s.slotCache != nil {
		s.slotCache.InvalidateDate(ctx, appt.AppointmentDate)
	}

	s.notifyStatusChange(ctx, appt, status)

	updated, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - failed to reload appointment: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%s moved from %s to %s", id, appt.Status, status)
	return models.FromDomainAppointment(updated), nil
}

// notifyStatusChange отправляет письмо клиенту при подтверждении или отмене
// Сбой рассылки не проваливает смену статуса
func (s *Service) notifyStatusChange(ctx context.Context, appt *domain.Appointment, newStatus domain.AppointmentStatus) {
	if s.mailerClient == nil || appt.Status == newStatus {
		return
	}

	var templateID string
	switch newStatus {
	case domain.StatusConfirmed:
		templateID = mailer.TemplateAppointmentConfirmed
	case domain.StatusCancelled:
		templateID = mailer.TemplateAppointmentCancelled
	default:
		return
	}

	serviceName := appt.ServiceID
	if svc, err := s.serviceRepo.GetByID(ctx, appt.ServiceID); err == nil {
		serviceName = svc.Name
	}

	payload := map[string]interface{}{
		"client_name":  appt.ClientName,
		"service_name": serviceName,
		"date":         appt.AppointmentDate.Format(domain.DateFormat),
		"start_time":   appt.StartTime.String(),
		"end_time":     appt.EndTime.String(),
	}

	if err := s.mailerClient.SendWithGracefulDegradation(ctx, templateID, appt.ClientEmail, payload); err != nil {
		s.logger.Warn("notifyStatusChange: mail degraded for appointment id=%s: %v", appt.ID, err)
	}
}

// AssignPatient привязывает запись к существующему пациенту
func (s *Service) AssignPatient(ctx context.Context, appointmentID string, req *models.AssignPatientRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("AssignPatient: appointment id=%s, patient id=%s", appointmentID, req.PatientID)

	if strings.TrimSpace(req.PatientID) == "" {
		return nil, fmt.Errorf("%w: patientId is required", ErrInvalidInput)
	}

	if _, err := s.patientRepo.GetByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			s.logger.Warn("AssignPatient: patient id=%s not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("%w: AssignPatient - repository error: %v", ErrInternal, err)
	}

	if err := s.appointmentRepo.SetPatient(ctx, appointmentID, ptr.Ptr(req.PatientID)); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("AssignPatient: repository error for appointment id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: AssignPatient - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, appointmentID)
}

// UnassignPatient снимает привязку записи к пациенту
func (s *Service) UnassignPatient(ctx context.Context, appointmentID string) (*models.AppointmentResponse, error) {
	s.logger.Info("UnassignPatient: appointment id=%s", appointmentID)

	if err := s.appointmentRepo.SetPatient(ctx, appointmentID, nil); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UnassignPatient: repository error for appointment id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: UnassignPatient - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, appointmentID)
}

// CreatePatientAndAssign создает карточку пациента и привязывает к ней запись
// Обе операции выполняются в одной транзакции: либо пациент создан и запись
// привязана, либо не произошло ничего
func (s *Service) CreatePatientAndAssign(ctx context.Context, appointmentID string, req *models.CreatePatientRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("CreatePatientAndAssign: appointment id=%s, patient name=%s", appointmentID, req.FullName)

	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	}
	if len(req.FullName) > domain.MaxClientNameLength {
		return nil, fmt.Errorf("%w: fullName is too long", ErrInvalidInput)
	}

	var patient *domain.Patient
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		patient, err = s.patientRepo.Create(txCtx, req.ToDomainDraft())
		if err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}

		if err := s.appointmentRepo.SetPatient(txCtx, appointmentID, &patient.ID); err != nil {
			return fmt.Errorf("failed to assign patient: %w", err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("CreatePatientAndAssign: appointment id=%s not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("CreatePatientAndAssign: transaction failed for appointment id=%s: %v", appointmentID, txErr)
		return nil, fmt.Errorf("%w: CreatePatientAndAssign - transaction failed: %v", ErrInternal, txErr)
	}

	s.logger.Info("CreatePatientAndAssign: patient id=%s created and assigned to appointment id=%s",
		patient.ID, appointmentID)
	return s.GetByID(ctx, appointmentID)
}

// ListPatients получает список пациентов
func (s *Service) ListPatients(ctx context.Context) (*models.PatientListResponse, error) {
	s.logger.Info("ListPatients: fetching patients")

	patients, err := s.patientRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListPatients: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPatients - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPatientList(patients), nil
}

// Delete удаляет запись безвозвратно
// Для освобождения слота с сохранением истории используется перевод в cancelled
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: appointment id=%s", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if s.slotCache != nil {
		s.slotCache.InvalidateDate(ctx, appt.AppointmentDate)
	}

	s.logger.Info("Delete: appointment id=%s deleted", id)
	return nil
}
