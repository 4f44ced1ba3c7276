package list_booking_options

import (
	"net/http"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
)

type Handler struct {
	service OptionService
	logger  Logger
}

func NewHandler(service OptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /admin/booking-options
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/booking-options - Failed to list options: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/booking-options - Returned %d options", len(opts))
	handlers.RespondJSON(w, http.StatusOK, FromServiceOptions(opts))
}
