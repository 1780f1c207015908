package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/linkhub/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/linkhub/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingFrom      = "параметр from обязателен"
	msgMissingTo        = "параметр to обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается RFC 3339"
	msgInvalidRange     = "некорректный диапазон дат"
	msgRangeTooWide     = "слишком широкий диапазон дат"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/slots
// Query params: from (required, RFC 3339), to (required, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceIDStr := vars["serviceId"]
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /services/{id}/slots - Missing from: service_id=%d", serviceID)
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	toStr := r.URL.Query().Get("to")
	if toStr == "" {
		h.logger.Warn("GET /services/{id}/slots - Missing to: service_id=%d", serviceID)
		handlers.RespondBadRequest(w, msgMissingTo)
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/slots - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/slots - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ServiceID: serviceID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidRange):
			h.logger.Warn("GET /services/{id}/slots - Invalid range: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailableSlots.ErrRangeTooWide):
			h.logger.Warn("GET /services/{id}/slots - Range too wide: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/slots - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /services/{id}/slots - Failed to get slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/slots - Returned %d slots: service_id=%d", len(result.Slots), serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
