package upsert_booking_option

import (
	"errors"
	"net/http"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
	"github.com/m04kA/wellmio-booking/internal/api/handlers/list_booking_options"
	"github.com/m04kA/wellmio-booking/internal/service/options"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "id должен быть UUID"
	msgUnknownName        = "неизвестное имя настройки"
	msgInvalidValue       = "некорректное значение настройки"
	msgNameTaken          = "имя уже используется другой настройкой"
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

// Handle PUT /admin/booking-options
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpsertOptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/booking-options - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	opt, err := h.service.Upsert(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, options.ErrInvalidInput):
			h.logger.Warn("PUT /admin/booking-options - Invalid id: %q", req.ID)
			handlers.RespondBadRequest(w, msgInvalidID)

		case errors.Is(err, options.ErrUnknownName):
			h.logger.Warn("PUT /admin/booking-options - Unknown name: %q", req.Name)
			handlers.RespondBadRequest(w, msgUnknownName)

		case errors.Is(err, options.ErrInvalidValue):
			h.logger.Warn("PUT /admin/booking-options - Invalid value for %s: %v", req.Name, err)
			handlers.RespondBadRequest(w, msgInvalidValue)

		case errors.Is(err, options.ErrNameTaken):
			h.logger.Warn("PUT /admin/booking-options - Name taken: id=%s, name=%s", req.ID, req.Name)
			handlers.RespondBadRequest(w, msgNameTaken)

		default:
			h.logger.Error("PUT /admin/booking-options - Failed to upsert option: id=%s, error=%v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/booking-options - Option saved: id=%s, name=%s", opt.ID, opt.Name)
	handlers.RespondJSON(w, http.StatusOK, list_booking_options.FromServiceOption(opt))
}
