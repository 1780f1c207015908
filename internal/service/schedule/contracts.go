package schedule

import (
	"context"

	"github.com/linkhub/booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	CreateService(ctx context.Context, service *domain.BookableService) (*domain.BookableService, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.BookableService, error)
	CreateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetWindowsByOwner(ctx context.Context, ownerID int64) ([]*domain.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, id int64, ownerID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
