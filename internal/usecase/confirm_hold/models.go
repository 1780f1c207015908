package confirm_hold

import "time"

// Request модель запроса на подтверждение удержания
type Request struct {
	BookingID      int64   // ID бронирования
	HoldToken      string  // Токен, выданный при создании удержания
	OrderReference *string // Референс оплаченного заказа (опционально для владельца)
}

// Response модель ответа с подтверждённым бронированием
type Response struct {
	ID        int64     // ID бронирования
	ServiceID int64     // ID услуги
	SlotStart time.Time // Начало слота
	SlotEnd   time.Time // Конец слота
	Status    string    // Статус (confirmed)
	OrderID   *string   // Привязанный заказ
	UpdatedAt time.Time // Время обновления
}
