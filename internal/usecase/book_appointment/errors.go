package book_appointment

import "errors"

var (
	// ErrConsentRequired возвращается при попытке записи без принятого согласия
	// Проверяется до любого обращения к хранилищу
	ErrConsentRequired = errors.New("book_appointment: consent must be accepted")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("book_appointment: service not found")

	// ErrInvalidDuration возвращается при некорректной длительности услуги
	ErrInvalidDuration = errors.New("book_appointment: service duration must be positive")

	// ErrInvalidDate возвращается при некорректной дате записи (в прошлом)
	ErrInvalidDate = errors.New("book_appointment: invalid appointment date")

	// ErrSlotTaken возвращается, когда выбранный слот пересекается с другой
	// не отменённой записью. Гонка двух посетителей за один слот —
	// моделируемый исход, а не тихая ошибка
	ErrSlotTaken = errors.New("book_appointment: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
