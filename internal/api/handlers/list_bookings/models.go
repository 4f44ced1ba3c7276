package list_bookings

import (
	"time"

	"github.com/m04kA/wellmio-booking/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               string  `json:"id"`
	SlotID           string  `json:"slot_id"`
	CustomerIdentity string  `json:"customer_identity"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentSessionID *string `json:"payment_session_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// FromServiceBookings конвертирует список бронирований в HTTP response
func FromServiceBookings(list []*models.BookingResponse) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(list))
	for _, b := range list {
		result = append(result, &BookingResponse{
			ID:               b.ID,
			SlotID:           b.SlotID,
			CustomerIdentity: b.CustomerIdentity,
			PaymentStatus:    b.PaymentStatus,
			PaymentSessionID: b.PaymentSessionID,
			CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return result
}
