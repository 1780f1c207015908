package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	// (уже отменено или истекло)
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrSlotNotAvailable возвращается, когда диапазон блокировки пересекается
	// с активным бронированием
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidStatus возвращается при попытке фильтровать по недопустимому статусу
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
