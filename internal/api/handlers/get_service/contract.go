package get_service

import (
	"context"

	"github.com/linkhub/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetService(ctx context.Context, id int64) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
