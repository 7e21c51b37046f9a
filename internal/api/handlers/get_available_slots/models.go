package get_available_slots

import (
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	getAvailableSlots "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// AvailableSlotsResponse HTTP модель ответа со свободными слотами
type AvailableSlotsResponse struct {
	Date            string         `json:"date"` // "2026-03-15"
	ServiceID       string         `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(serviceID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(r *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.Start.String(),
			EndTime:   s.End.String(),
		})
	}

	return &AvailableSlotsResponse{
		Date:            r.Date.Format(domain.DateFormat),
		ServiceID:       r.ServiceID,
		DurationMinutes: r.DurationMinutes,
		Slots:           slots,
	}
}
