package payments

import "time"

// OrderStatus статус заказа у платёжного провайдера
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusRefunded OrderStatus = "refunded"
	OrderStatusFailed   OrderStatus = "failed"
)

// Order заказ, связанный с бронированием
type Order struct {
	Reference string      `json:"reference"`
	Status    OrderStatus `json:"status"`
	Amount    float64     `json:"amount"`
	Currency  string      `json:"currency"`
	PaidAt    *time.Time  `json:"paidAt,omitempty"`
}

// IsPaid проверяет, что заказ успешно оплачен
func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
