package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	SlotID           string // UUID слота
	CustomerIdentity string // email или идентификатор пользователя
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               string
	CustomerIdentity string
	TimeSlot         TimeSlot
	PaymentStatus    string
	EntryURL         string // адрес hosted checkout
	CreatedAt        time.Time
}

// TimeSlot слот в составе ответа
type TimeSlot struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// BookingIDPlaceholder подставляется в success/cancel URL вместо ID бронирования
const BookingIDPlaceholder = "{BOOKING_ID}"

// CheckoutConfig параметры checkout-сессии
type CheckoutConfig struct {
	ProductName string
	SuccessURL  string
	CancelURL   string
}
