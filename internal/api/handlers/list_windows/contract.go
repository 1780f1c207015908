package list_windows

import (
	"context"

	"github.com/linkhub/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	ListWindows(ctx context.Context, ownerID int64) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
