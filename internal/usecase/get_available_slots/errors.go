package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidRange возвращается при некорректном диапазоне дат (from > to)
	ErrInvalidRange = errors.New("get_available_slots: invalid date range")

	// ErrRangeTooWide возвращается, когда запрошенный диапазон превышает лимит
	ErrRangeTooWide = errors.New("get_available_slots: date range is too wide")

	// ErrInvalidTimezone возвращается, когда таймзона услуги не загружается
	ErrInvalidTimezone = errors.New("get_available_slots: invalid service timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
