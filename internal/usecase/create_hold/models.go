package create_hold

import "time"

// Request модель запроса на создание удержания слота
type Request struct {
	ServiceID  int64     // ID услуги
	SlotStart  time.Time // Начало слота (должно точно совпадать со слотом резолвера)
	SlotEnd    time.Time // Конец слота
	BuyerEmail *string   // Email покупателя (опционально на этапе удержания)
	BuyerName  *string   // Имя покупателя (опционально)
	BuyerPhone *string   // Телефон покупателя (опционально)
	Notes      *string   // Заметки (опционально)
}

// Response модель ответа с созданным удержанием
type Response struct {
	ID            int64     // ID бронирования
	ServiceID     int64     // ID услуги
	SlotStart     time.Time // Начало слота
	SlotEnd       time.Time // Конец слота
	Status        string    // Статус (hold)
	HoldToken     string    // Токен-капабилити для подтверждения удержания
	HoldExpiresAt time.Time // Дедлайн подтверждения
	CreatedAt     time.Time // Время создания
}
