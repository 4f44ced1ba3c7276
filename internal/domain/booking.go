package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// Booking represents a customer's claim on a time slot
type Booking struct {
	ID               uuid.UUID
	SlotID           uuid.UUID
	CustomerIdentity string // email или идентификатор пользователя
	PaymentStatus    PaymentStatus
	PaymentSessionID *string // ID checkout-сессии у платежного провайдера
	CreatedAt        time.Time
}

// IsPending returns true if the payment outcome is not yet known
func (b *Booking) IsPending() bool {
	return b.PaymentStatus == PaymentPending
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.PaymentStatus != PaymentFailed
}
