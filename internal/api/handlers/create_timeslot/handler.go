package create_timeslot

import (
	"errors"
	"net/http"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
	"github.com/m04kA/wellmio-booking/internal/service/timeslots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInterval    = "end_time должен быть позже start_time"
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

// Handle POST /admin/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/timeslots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, end, err := req.Parse()
	if err != nil {
		h.logger.Warn("POST /admin/timeslots - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	slot, err := h.service.Create(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, timeslots.ErrInvalidInterval) {
			h.logger.Warn("POST /admin/timeslots - Invalid interval: start=%s, end=%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidInterval)
			return
		}
		h.logger.Error("POST /admin/timeslots - Failed to create slot: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/timeslots - Slot created: slot_id=%s", slot.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceSlot(slot))
}
