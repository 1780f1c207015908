package create_hold

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_hold: service not found")

	// ErrInvalidSlot возвращается, когда запрошенный слот не совпадает ни с одним
	// слотом, генерируемым расписанием (неверные границы, прошлое, вне окон)
	ErrInvalidSlot = errors.New("create_hold: slot does not match the schedule")

	// ErrSlotNotAvailable возвращается, когда слот корректен, но уже занят
	// другим удержанием или подтверждённым бронированием
	ErrSlotNotAvailable = errors.New("create_hold: slot is not available")

	// ErrInvalidTimezone возвращается, когда таймзона услуги не загружается
	ErrInvalidTimezone = errors.New("create_hold: invalid service timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
