package get_available_slots

import (
	"sort"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// generateSlots генерирует доступные слоты по окнам доступности
//
// Для каждого окна кандидаты перебираются от начала окна с фиксированным
// шагом сетки (30 минут); конец кандидата — начало плюс длительность услуги.
// Кандидат отбрасывается, если не помещается в окно целиком или пересекается
// с занятым/заблокированным интервалом. Слоты всех окон конкатенируются и
// сортируются по времени начала; дедупликации между окнами нет — пересечение
// окон считается ответственностью админской конфигурации
func generateSlots(
	windows []*domain.WeeklyWindow,
	durationMinutes int,
	bookedRanges []domain.TimeRange,
	blockedRanges []domain.TimeRange,
) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)

	for _, window := range windows {
		windowStart, err := window.StartTime.Minutes()
		if err != nil {
			return nil, err
		}
		windowEnd, err := window.EndTime.Minutes()
		if err != nil {
			return nil, err
		}

		for start := windowStart; start < windowEnd; start += domain.SlotStepMinutes {
			end := start + durationMinutes

			// Слот должен помещаться в окно целиком; конец ровно на границе
			// окна допустим. Конец только растёт, дальше можно не проверять
			if end > windowEnd {
				break
			}

			slot := domain.Slot{
				Start: timeutil.FromMinutes(start, false),
				End:   timeutil.FromMinutes(end, false),
			}

			if overlapsAny(slot, bookedRanges) || overlapsAny(slot, blockedRanges) {
				continue
			}

			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.IsBefore(slots[j].Start)
	})

	return slots, nil
}

// overlapsAny проверяет строгое пересечение слота с любым из интервалов
// Граничащие интервалы пересечением не считаются: запись 10:00-11:00
// не мешает слоту 11:00-12:00
func overlapsAny(slot domain.Slot, ranges []domain.TimeRange) bool {
	for _, r := range ranges {
		if timeutil.RangesOverlap(slot.Start, slot.End, r.Start, r.End) {
			return true
		}
	}
	return false
}

// bookedRangesOf проецирует активные записи даты на интервалы времени дня
func bookedRangesOf(appointments []*domain.Appointment) []domain.TimeRange {
	ranges := make([]domain.TimeRange, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		ranges = append(ranges, appt.Range())
	}
	return ranges
}
