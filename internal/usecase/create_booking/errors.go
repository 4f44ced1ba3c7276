package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotInPast возвращается, когда слот уже начался
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrOutsideBookingWindow возвращается, когда слот дальше горизонта booking_window_days
	ErrOutsideBookingWindow = errors.New("create_booking: slot is outside the booking window")

	// ErrSlotUnavailable возвращается, когда слот уже забронирован
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrPaymentUnavailable возвращается, когда не удалось открыть checkout-сессию
	ErrPaymentUnavailable = errors.New("create_booking: payment provider unavailable")

	// ErrPaymentTimeout возвращается, когда провайдер не ответил вовремя
	ErrPaymentTimeout = errors.New("create_booking: payment provider timeout")

	// ErrStorageTimeout возвращается, когда хранилище не ответило до истечения дедлайна запроса
	ErrStorageTimeout = errors.New("create_booking: storage timeout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
