package manage_schedule

import (
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	scheduleModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/schedule/models"
)

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "14:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateWindowRequest) ToServiceRequest() *scheduleModels.CreateWindowRequest {
	return &scheduleModels.CreateWindowRequest{
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// BlockDateRequest HTTP request model
type BlockDateRequest struct {
	Date   string  `json:"date"` // "2026-03-15"
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом даты)
func (r *BlockDateRequest) ToServiceRequest() (*scheduleModels.BlockDateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &scheduleModels.BlockDateRequest{
		Date:   date,
		Reason: r.Reason,
	}, nil
}

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Date      string  `json:"date"`      // "2026-03-15"
	StartTime string  `json:"startTime"` // "12:00"
	EndTime   string  `json:"endTime"`   // "13:30"
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом даты)
func (r *BlockSlotRequest) ToServiceRequest() (*scheduleModels.BlockSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &scheduleModels.BlockSlotRequest{
		Date:      date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
	}, nil
}
