package models

import (
	"time"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// BookingResponse бронирование для административного списка
type BookingResponse struct {
	ID               string
	SlotID           string
	CustomerIdentity string
	PaymentStatus    string
	PaymentSessionID *string
	CreatedAt        time.Time
}

// FromDomainBooking конвертирует доменную модель в модель ответа
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID.String(),
		SlotID:           b.SlotID.String(),
		CustomerIdentity: b.CustomerIdentity,
		PaymentStatus:    string(b.PaymentStatus),
		PaymentSessionID: b.PaymentSessionID,
		CreatedAt:        b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return result
}
