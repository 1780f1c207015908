package cancel_by_order

import (
	"context"

	"github.com/linkhub/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	CancelByOrder(ctx context.Context, req *models.CancelByOrderRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
