package get_available_slots

import (
	"context"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBlockingByServiceBetween получает бронирования, занимающие слоты услуги в диапазоне
	GetBlockingByServiceBetween(ctx context.Context, serviceID int64, from, to time.Time, now time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.BookableService, error)
	GetWindowsByOwner(ctx context.Context, ownerID int64) ([]*domain.AvailabilityWindow, error)
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
