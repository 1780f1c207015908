package delete_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/linkhub/booking-service/internal/api/handlers"
	"github.com/linkhub/booking-service/internal/api/middleware"
	"github.com/linkhub/booking-service/internal/service/schedule"
)

const (
	msgInvalidWindowID = "некорректный ID окна доступности"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotFound        = "окно доступности не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	windowIDStr := vars["windowId"]

	windowID, err := strconv.ParseInt(windowIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /windows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), windowID, userID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrWindowNotFound):
			h.logger.Warn("DELETE /windows/{id} - Window not found: window_id=%d, user_id=%d", windowID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /windows/{id} - Failed to delete window: window_id=%d, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /windows/{id} - Window deleted: window_id=%d, user_id=%d", windowID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
