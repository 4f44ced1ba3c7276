package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
	createBooking "github.com/m04kA/wellmio-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "slot_id должен быть UUID, customer_identity не может быть пустым"
	msgSlotNotFound       = "временной слот не найден"
	msgSlotInPast         = "временной слот уже начался"
	msgOutsideWindow      = "слот слишком далеко в будущем"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgPaymentUnavailable = "не удалось создать платеж, попробуйте позже"
	msgPaymentTimeout     = "платежный провайдер не ответил вовремя"
	msgStorageTimeout     = "сервис временно недоступен, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%s", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in the past: slot_id=%s", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrOutsideBookingWindow):
			h.logger.Warn("POST /bookings - Slot outside booking window: slot_id=%s", req.SlotID)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot not available: slot_id=%s", req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPaymentTimeout):
			h.logger.Error("POST /bookings - Payment provider timeout: slot_id=%s, error=%v", req.SlotID, err)
			handlers.RespondServiceUnavailable(w, msgPaymentTimeout)

		case errors.Is(err, createBooking.ErrStorageTimeout):
			h.logger.Error("POST /bookings - Storage timeout: slot_id=%s, error=%v", req.SlotID, err)
			handlers.RespondServiceUnavailable(w, msgStorageTimeout)

		case errors.Is(err, createBooking.ErrPaymentUnavailable):
			h.logger.Error("POST /bookings - Payment provider failed: slot_id=%s, error=%v", req.SlotID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%s, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, slot_id=%s",
		result.ID, result.TimeSlot.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
