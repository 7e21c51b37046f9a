package appointments

import (
	"context"
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, adminNotes *string) error
	SetPatient(ctx context.Context, id string, patientID *string) error
	Delete(ctx context.Context, id string) error
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	Create(ctx context.Context, draft domain.PatientDraft) (*domain.Patient, error)
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	List(ctx context.Context) ([]*domain.Patient, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache интерфейс инвалидации кэша слотов
type SlotCache interface {
	InvalidateDate(ctx context.Context, date time.Time)
}

// MailerClient интерфейс клиента почтовых уведомлений
type MailerClient interface {
	SendWithGracefulDegradation(ctx context.Context, templateID, recipient string, payload map[string]interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
