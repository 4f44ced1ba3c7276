package handle_payment_event

// Request сырое тело webhook и заголовок подписи
type Request struct {
	Payload   []byte
	Signature string
}

// Response подтверждение приёма события
type Response struct {
	Received bool
}
