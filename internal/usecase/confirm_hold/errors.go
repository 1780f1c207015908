package confirm_hold

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_hold: booking not found")

	// ErrInvalidToken возвращается при несовпадении hold-токена
	// Статус бронирования при этом не меняется
	ErrInvalidToken = errors.New("confirm_hold: invalid hold token")

	// ErrHoldExpired возвращается при попытке подтвердить истёкшее удержание
	ErrHoldExpired = errors.New("confirm_hold: hold has expired")

	// ErrNotHold возвращается, когда бронирование не является активным удержанием
	// (уже подтверждено, отменено или истекло)
	ErrNotHold = errors.New("confirm_hold: booking is not an active hold")

	// ErrOrderNotPaid возвращается, когда заказ не оплачен у провайдера
	ErrOrderNotPaid = errors.New("confirm_hold: order is not paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_hold: internal error")
)
