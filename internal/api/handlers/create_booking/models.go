package create_booking

import (
	"time"

	createBooking "github.com/m04kA/wellmio-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID           string `json:"slot_id"`
	CustomerIdentity string `json:"customer_identity"`
}

// TimeSlotResponse слот в составе ответа
type TimeSlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               string           `json:"id"`
	CustomerIdentity string           `json:"customer_identity"`
	TimeSlot         TimeSlotResponse `json:"time_slot"`
	PaymentStatus    string           `json:"payment_status"`
	EntryURL         string           `json:"entry_url"`
	CreatedAt        string           `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		SlotID:           r.SlotID,
		CustomerIdentity: r.CustomerIdentity,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		CustomerIdentity: resp.CustomerIdentity,
		TimeSlot: TimeSlotResponse{
			ID:        resp.TimeSlot.ID,
			StartTime: resp.TimeSlot.StartTime.UTC().Format(time.RFC3339),
			EndTime:   resp.TimeSlot.EndTime.UTC().Format(time.RFC3339),
			Status:    resp.TimeSlot.Status,
		},
		PaymentStatus: resp.PaymentStatus,
		EntryURL:      resp.EntryURL,
		CreatedAt:     resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
