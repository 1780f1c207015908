package create_service

import (
	"context"

	"github.com/linkhub/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
