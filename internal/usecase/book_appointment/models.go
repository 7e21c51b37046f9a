package book_appointment

import (
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// Request модель запроса на создание записи
// Время окончания не принимается от клиента: оно вычисляется из длительности услуги
type Request struct {
	ServiceID string              // ID услуги
	Date      time.Time           // Дата записи (без времени)
	StartTime timeutil.TimeString // Время начала слота (например, "10:00")

	ClientName     string
	ClientPronouns *string
	ClientEmail    string
	ClientPhone    *string
	ClientMessage  *string

	Modality        domain.Modality
	ConsentAccepted bool
}

// Response модель ответа с созданной записью
type Response struct {
	ID              string
	ServiceID       string
	ServiceName     string
	AppointmentDate time.Time
	StartTime       timeutil.TimeString
	EndTime         timeutil.TimeString
	ClientName      string
	ClientEmail     string
	Modality        domain.Modality
	Status          domain.AppointmentStatus
	CreatedAt       time.Time
}
