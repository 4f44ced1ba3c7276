package get_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
	"github.com/m04kA/wellmio-booking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

// BookingStatusResponse статус бронирования для страницы подтверждения
type BookingStatusResponse struct {
	ID            string `json:"id"`
	SlotID        string `json:"slot_id"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /bookings/{bookingId}
// Публичный endpoint: ID бронирования известен только клиенту, создавшему его.
// customer_identity в ответ не попадает.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %q", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%s, status=%s", bookingID, booking.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, &BookingStatusResponse{
		ID:            booking.ID,
		SlotID:        booking.SlotID,
		PaymentStatus: booking.PaymentStatus,
		CreatedAt:     booking.CreatedAt.UTC().Format(time.RFC3339),
	})
}
