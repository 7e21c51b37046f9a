package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// TimeString представляет время дня в каноничном формате "HH:MM"
type TimeString string

const (
	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60

	timeLayout = "15:04"

	// EndOfDay последняя представимая минута суток
	EndOfDay TimeString = "23:59"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("timeutil: invalid time string format")
)

// New создает TimeString из time.Time (отбрасывает секунды)
func New(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// Parse парсит строку "HH:MM" или "HH:MM:SS" в каноничный TimeString "HH:MM"
func Parse(s string) (TimeString, error) {
	if len(s) >= 8 {
		if _, err := time.Parse("15:04:05", s[:8]); err == nil {
			return TimeString(s[:5]), nil
		}
	}
	if len(s) >= 5 {
		if _, err := time.Parse(timeLayout, s[:5]); err == nil {
			return TimeString(s[:5]), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// FromMinutes конвертирует минуты с начала суток в TimeString
// Значение нормализуется по модулю 1440, поэтому 23:45 + 30 минут даёт "00:15"
func FromMinutes(minutes int, withSeconds bool) TimeString {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	if withSeconds {
		return TimeString(fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60))
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// Minutes возвращает количество минут с начала суток (0..1439)
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes добавляет минуты ко времени с переходом через полночь (по модулю суток)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(base+minutes, false), nil
}

// IsBefore возвращает true, если t строго раньше other
// Каноничный формат "HH:MM" допускает лексикографическое сравнение
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// String возвращает "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// WithSeconds возвращает "HH:MM:SS" (формат колонок time в хранилище)
func (t TimeString) WithSeconds() string {
	return string(t) + ":00"
}

// RangesOverlap проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Строгие неравенства: соприкасающиеся границы пересечением не считаются,
// 09:00-10:00 и 10:00-11:00 — соседние слоты
func RangesOverlap(aStart, aEnd, bStart, bEnd TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}
