package payments

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден у провайдера
	ErrOrderNotFound = errors.New("payments: order not found")

	// ErrOrderNotPaid возвращается, когда заказ существует, но не оплачен
	ErrOrderNotPaid = errors.New("payments: order is not paid")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("payments: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments: internal error")
)
