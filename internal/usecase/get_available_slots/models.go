package get_available_slots

import (
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID string    // ID услуги (её длительность задаёт длину слота)
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time     // Дата, на которую запрашивались слоты
	ServiceID       string        // ID услуги
	DurationMinutes int           // Длительность слота в минутах
	Slots           []domain.Slot // Упорядоченный список доступных слотов
}
