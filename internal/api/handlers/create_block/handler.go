package create_block

import (
	"errors"
	"net/http"

	"github.com/linkhub/booking-service/internal/api/handlers"
	"github.com/linkhub/booking-service/internal/api/middleware"
	"github.com/linkhub/booking-service/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
	msgRangeNotAvailable  = "интервал пересекается с существующим бронированием"
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

// Handle POST /api/v1/blocks
// Владелец закрывает произвольный интервал от бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /blocks - Failed to parse times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.CreateBlock(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrServiceNotFound):
			h.logger.Warn("POST /blocks - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /blocks - Access denied: service_id=%d, user_id=%d", req.ServiceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrSlotNotAvailable):
			h.logger.Warn("POST /blocks - Range not available: service_id=%d", req.ServiceID)
			handlers.RespondConflict(w, msgRangeNotAvailable)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /blocks - Invalid input: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /blocks - Failed to create block: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks - Block created: booking_id=%d, service_id=%d, user_id=%d",
		result.ID, req.ServiceID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
