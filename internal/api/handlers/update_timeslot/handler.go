package update_timeslot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
	"github.com/m04kA/wellmio-booking/internal/api/handlers/create_timeslot"
	"github.com/m04kA/wellmio-booking/internal/service/timeslots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInterval    = "end_time должен быть позже start_time"
	msgNotFound           = "временной слот не найден"
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

// Handle PUT /admin/timeslots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	var req create_timeslot.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/timeslots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, end, err := req.Parse()
	if err != nil {
		h.logger.Warn("PUT /admin/timeslots/{id} - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	slot, err := h.service.Update(r.Context(), slotID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidInput):
			h.logger.Warn("PUT /admin/timeslots/{id} - Invalid slot ID: %q", slotID)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, timeslots.ErrInvalidInterval):
			h.logger.Warn("PUT /admin/timeslots/{id} - Invalid interval: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, timeslots.ErrSlotNotFound):
			h.logger.Warn("PUT /admin/timeslots/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /admin/timeslots/{id} - Failed to update slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/timeslots/{id} - Slot updated: slot_id=%s", slot.ID)
	handlers.RespondJSON(w, http.StatusOK, create_timeslot.FromServiceSlot(slot))
}
