package create_hold

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/linkhub/booking-service/internal/api/handlers"
	createHold "github.com/linkhub/booking-service/internal/usecase/create_hold"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidSlot        = "слот не соответствует расписанию услуги"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase CreateHoldUseCase
	metrics HoldMetrics
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, metrics HoldMetrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/hold
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceIDStr := vars["serviceId"]
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{id}/hold - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/hold - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(serviceID)
	if err != nil {
		h.logger.Warn("POST /services/{id}/hold - Failed to parse slot times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/hold - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createHold.ErrInvalidSlot):
			h.logger.Warn("POST /services/{id}/hold - Slot does not match schedule: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createHold.ErrSlotNotAvailable):
			h.metrics.IncHoldConflicts()
			h.logger.Warn("POST /services/{id}/hold - Slot not available: service_id=%d", serviceID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /services/{id}/hold - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /services/{id}/hold - Failed to create hold: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncHoldsCreated()
	h.logger.Info("POST /services/{id}/hold - Hold created: booking_id=%d, service_id=%d, expires_at=%s",
		result.ID, serviceID, result.HoldExpiresAt)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
