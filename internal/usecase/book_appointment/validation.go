package book_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// validateRequest валидирует входные данные запроса
// Согласие проверяется первым: без него обращений к хранилищу не происходит
func validateRequest(req *Request) error {
	if !req.ConsentAccepted {
		return ErrConsentRequired
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientEmail) == "" || !strings.Contains(req.ClientEmail, "@") {
		return fmt.Errorf("%w: valid clientEmail is required", ErrInvalidInput)
	}

	if req.ClientMessage != nil && len(*req.ClientMessage) > domain.MaxClientMessageLength {
		return fmt.Errorf("%w: clientMessage is too long", ErrInvalidInput)
	}

	if !domain.ValidModality(req.Modality) {
		return fmt.Errorf("%w: unknown modality %q", ErrInvalidInput, req.Modality)
	}

	return nil
}

// computeEndTime вычисляет время окончания слота
// Запись не может пересекать полночь: арифметика времени в pkg/timeutil
// заворачивает сутки по модулю, но здесь это означало бы запись,
// «закончившуюся» раньше своего начала
func computeEndTime(start timeutil.TimeString, durationMinutes int) (timeutil.TimeString, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Конец ровно в полночь тоже отклоняется: "00:00" как время окончания
	// ломает лексикографическое сравнение интервалов
	endMinutes := startMinutes + durationMinutes
	if endMinutes >= timeutil.MinutesPerDay {
		return "", fmt.Errorf("%w: appointment would cross midnight", ErrInvalidInput)
	}

	return timeutil.FromMinutes(endMinutes, false), nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// findOverlapping ищет активную запись, пересекающуюся со слотом
// Строгие неравенства: граничащие записи пересечением не считаются
func findOverlapping(start, end timeutil.TimeString, appointments []*domain.Appointment) *domain.Appointment {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if timeutil.RangesOverlap(start, end, appt.StartTime, appt.EndTime) {
			return appt
		}
	}
	return nil
}
