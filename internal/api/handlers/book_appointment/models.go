package book_appointment

import (
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	bookAppointment "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/usecase/book_appointment"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`      // "2026-03-15"
	StartTime string `json:"startTime"` // "10:00"

	ClientName     string  `json:"clientName"`
	ClientPronouns *string `json:"clientPronouns,omitempty"`
	ClientEmail    string  `json:"clientEmail"`
	ClientPhone    *string `json:"clientPhone,omitempty"`
	ClientMessage  *string `json:"clientMessage,omitempty"`

	Modality        string `json:"modality"` // "online" | "presencial"
	ConsentAccepted bool   `json:"consentAccepted"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              string `json:"id"`
	ServiceID       string `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
	Modality        string `json:"modality"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := timeutil.Parse(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		ServiceID:       r.ServiceID,
		Date:            date,
		StartTime:       startTime,
		ClientName:      r.ClientName,
		ClientPronouns:  r.ClientPronouns,
		ClientEmail:     r.ClientEmail,
		ClientPhone:     r.ClientPhone,
		ClientMessage:   r.ClientMessage,
		Modality:        domain.Modality(r.Modality),
		ConsentAccepted: r.ConsentAccepted,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(r *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              r.ID,
		ServiceID:       r.ServiceID,
		ServiceName:     r.ServiceName,
		AppointmentDate: r.AppointmentDate.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		Modality:        string(r.Modality),
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}
