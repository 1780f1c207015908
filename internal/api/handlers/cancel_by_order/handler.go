package cancel_by_order

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linkhub/booking-service/internal/api/handlers"
	"github.com/linkhub/booking-service/internal/service/bookings"
	"github.com/linkhub/booking-service/internal/service/bookings/models"
)

const (
	msgMissingOrderID     = "отсутствует ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование по заказу не найдено"
	msgCannotCancel       = "бронирование не может быть отменено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/cancel
// Каскадная отмена бронирования при отмене или возврате заказа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]
	if orderID == "" {
		h.logger.Warn("PATCH /orders/{id}/cancel - Missing order ID")
		handlers.RespondBadRequest(w, msgMissingOrderID)
		return
	}

	var req CancelByOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CancelByOrder(r.Context(), &models.CancelByOrderRequest{
		OrderID:            orderID,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /orders/{id}/cancel - Booking not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /orders/{id}/cancel - Cannot cancel: order_id=%s", orderID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /orders/{id}/cancel - Invalid input: order_id=%s, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /orders/{id}/cancel - Failed to cancel booking: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/cancel - Booking cancelled: booking_id=%d, order_id=%s", result.ID, orderID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
