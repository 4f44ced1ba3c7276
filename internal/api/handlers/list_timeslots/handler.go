package list_timeslots

import (
	"net/http"
	"time"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
	"github.com/m04kA/wellmio-booking/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /timeslots
// Query params: date (опционально, YYYY-MM-DD)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var date *time.Time

	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /timeslots - Invalid date %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	slots, err := h.service.ListAvailable(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /timeslots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /timeslots - Returned %d slots", len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromServiceSlots(slots))
}
