package get_available_slots

import (
	"time"

	"github.com/linkhub/booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	From      time.Time // Начало диапазона
	To        time.Time // Конец диапазона
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID int64         // ID услуги
	From      time.Time     // Начало диапазона (после клампа к текущему времени)
	To        time.Time     // Конец диапазона
	Timezone  string        // Таймзона услуги
	Slots     []domain.Slot // Доступные слоты по возрастанию времени начала
}
