package create_block

import (
	"context"

	"github.com/linkhub/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
