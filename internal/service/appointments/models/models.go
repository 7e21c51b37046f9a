package models

import (
	"errors"
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// AssignPatientRequest запрос на привязку записи к пациенту
type AssignPatientRequest struct {
	PatientID string `json:"patientId"`
}

// CreatePatientRequest запрос на создание карточки пациента
type CreatePatientRequest struct {
	FullName      string  `json:"fullName"`
	PreferredName *string `json:"preferredName,omitempty"`
	Pronouns      *string `json:"pronouns,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToDomainDraft конвертирует request в domain модель
func (r *CreatePatientRequest) ToDomainDraft() domain.PatientDraft {
	return domain.PatientDraft{
		FullName:      r.FullName,
		PreferredName: r.PreferredName,
		Pronouns:      r.Pronouns,
		Email:         r.Email,
		Phone:         r.Phone,
		Notes:         r.Notes,
	}
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string `json:"id"`
	ServiceID       string `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"` // "2026-03-15"
	StartTime       string `json:"startTime"`       // "10:00"
	EndTime         string `json:"endTime"`         // "11:00"

	ClientName     string  `json:"clientName"`
	ClientPronouns *string `json:"clientPronouns,omitempty"`
	ClientEmail    string  `json:"clientEmail"`
	ClientPhone    *string `json:"clientPhone,omitempty"`
	ClientMessage  *string `json:"clientMessage,omitempty"`

	Modality   string  `json:"modality"`
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
	PatientID  *string `json:"patientId,omitempty"`

	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// PatientResponse ответ с данными пациента
type PatientResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	PreferredName *string   `json:"preferredName,omitempty"`
	Pronouns      *string   `json:"pronouns,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	IsActive      bool      `json:"isActive"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PatientListResponse ответ со списком пациентов
type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
}

// Методы конвертации

// ToDomainStatus конвертирует строку в domain статус
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !domain.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		ServiceID:       a.ServiceID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		EndTime:         a.EndTime.String(),
		ClientName:      a.ClientName,
		ClientPronouns:  a.ClientPronouns,
		ClientEmail:     a.ClientEmail,
		ClientPhone:     a.ClientPhone,
		ClientMessage:   a.ClientMessage,
		Modality:        string(a.Modality),
		Status:          string(a.Status),
		AdminNotes:      a.AdminNotes,
		PatientID:       a.PatientID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		if resp := FromDomainAppointment(a); resp != nil {
			result.Appointments = append(result.Appointments, *resp)
		}
	}
	return result
}

// FromDomainPatient конвертирует domain модель пациента в DTO
func FromDomainPatient(p *domain.Patient) *PatientResponse {
	if p == nil {
		return nil
	}
	return &PatientResponse{
		ID:            p.ID,
		FullName:      p.FullName,
		PreferredName: p.PreferredName,
		Pronouns:      p.Pronouns,
		Email:         p.Email,
		Phone:         p.Phone,
		IsActive:      p.IsActive,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromDomainPatientList конвертирует список пациентов в DTO
func FromDomainPatientList(patients []*domain.Patient) *PatientListResponse {
	result := &PatientListResponse{
		Patients: make([]PatientResponse, 0, len(patients)),
	}
	for _, p := range patients {
		if resp := FromDomainPatient(p); resp != nil {
			result.Patients = append(result.Patients, *resp)
		}
	}
	return result
}
