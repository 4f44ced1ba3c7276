package payments

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")

	// ErrTimeout возвращается, когда провайдер не ответил за отведённое время
	ErrTimeout = errors.New("payments client: provider timeout")

	// ErrUnavailable возвращается, когда провайдер недоступен или ответил 5xx
	ErrUnavailable = errors.New("payments client: provider unavailable")

	// ErrRejected возвращается, когда провайдер отклонил запрос (4xx)
	ErrRejected = errors.New("payments client: request rejected")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("payments client: invalid response")

	// ErrInvalidSignature возвращается, когда подпись webhook отсутствует или не совпадает
	ErrInvalidSignature = errors.New("payments webhook: invalid signature")

	// ErrMalformedEvent возвращается, когда тело webhook не удалось разобрать
	ErrMalformedEvent = errors.New("payments webhook: malformed event")
)
