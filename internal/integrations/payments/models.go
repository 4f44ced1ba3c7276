package payments

// CheckoutRequest параметры checkout-сессии
type CheckoutRequest struct {
	AmountMinor int64  // сумма в минимальных единицах валюты (öre, cents)
	Currency    string // ISO 4217, например "SEK"
	ProductName string
	SuccessURL  string
	CancelURL   string
	BookingID   string // уходит в metadata[booking_id] и client_reference_id
}

// CheckoutSession созданная сессия оплаты
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ErrorResponse модель ошибки провайдера
type ErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
