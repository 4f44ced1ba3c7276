package delete_timeslot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
	"github.com/m04kA/wellmio-booking/internal/service/timeslots"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgNotFound      = "временной слот не найден"
	msgSlotBooked    = "нельзя удалить забронированный слот"
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

// Handle DELETE /admin/timeslots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	if err := h.service.Delete(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/timeslots/{id} - Invalid slot ID: %q", slotID)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, timeslots.ErrSlotNotFound):
			h.logger.Warn("DELETE /admin/timeslots/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeslots.ErrSlotBooked):
			h.logger.Warn("DELETE /admin/timeslots/{id} - Slot is booked: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgSlotBooked)

		default:
			h.logger.Error("DELETE /admin/timeslots/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/timeslots/{id} - Slot deleted: slot_id=%s", slotID)
	handlers.RespondNoContent(w)
}
