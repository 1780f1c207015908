package create_hold

import (
	"context"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBlockingByServiceBetween(ctx context.Context, serviceID int64, from, to time.Time, now time.Time) ([]*domain.Booking, error)
	// ExpireStaleHolds переводит просроченные удержания услуги в expired,
	// чтобы мёртвое удержание не блокировало вставку через уникальный индекс
	ExpireStaleHolds(ctx context.Context, serviceID int64, now time.Time) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.BookableService, error)
	GetWindowsByOwner(ctx context.Context, ownerID int64) ([]*domain.AvailabilityWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenGenerator интерфейс генерации hold-токенов (для тестирования)
type TokenGenerator interface {
	Generate() string
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
