package handle_payment_event

import "errors"

var (
	// ErrInvalidSignature возвращается, когда подпись webhook не прошла проверку
	ErrInvalidSignature = errors.New("handle_payment_event: invalid signature")

	// ErrMalformedEvent возвращается, когда тело webhook не удалось разобрать
	ErrMalformedEvent = errors.New("handle_payment_event: malformed event")

	// ErrInternal возвращается при внутренних ошибках; провайдер повторит доставку
	ErrInternal = errors.New("handle_payment_event: internal error")
)
