package confirm_hold

import (
	"context"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
	"github.com/linkhub/booking-service/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Confirm(ctx context.Context, id int64, orderID *string) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// PaymentsClient интерфейс клиента платёжного провайдера
type PaymentsClient interface {
	VerifyOrder(ctx context.Context, reference string) (*payments.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
