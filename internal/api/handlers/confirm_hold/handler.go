package confirm_hold

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/linkhub/booking-service/internal/api/handlers"
	confirmHold "github.com/linkhub/booking-service/internal/usecase/confirm_hold"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgInvalidToken       = "неверный токен удержания"
	msgHoldExpired        = "срок удержания слота истёк"
	msgNotHold            = "бронирование не является активным удержанием"
	msgOrderNotPaid       = "заказ не оплачен"
)

type Handler struct {
	useCase ConfirmHoldUseCase
	metrics HoldMetrics
	logger  Logger
}

func NewHandler(useCase ConfirmHoldUseCase, metrics HoldMetrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingIDStr := vars["bookingId"]
	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, confirmHold.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmHold.ErrInvalidToken):
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid hold token: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgInvalidToken)

		case errors.Is(err, confirmHold.ErrHoldExpired):
			h.logger.Warn("POST /bookings/{id}/confirm - Hold expired: booking_id=%d", bookingID)
			handlers.RespondGone(w, msgHoldExpired)

		case errors.Is(err, confirmHold.ErrNotHold):
			h.logger.Warn("POST /bookings/{id}/confirm - Not an active hold: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotHold)

		case errors.Is(err, confirmHold.ErrOrderNotPaid):
			h.logger.Warn("POST /bookings/{id}/confirm - Order not paid: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgOrderNotPaid)

		case errors.Is(err, confirmHold.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm hold: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncHoldsConfirmed()
	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
