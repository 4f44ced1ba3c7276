package timeslots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("timeslots: slot not found")

	// ErrInvalidInterval возвращается, когда end_time не позже start_time
	ErrInvalidInterval = errors.New("timeslots: end time must be after start time")

	// ErrSlotBooked возвращается при попытке удалить забронированный слот
	ErrSlotBooked = errors.New("timeslots: slot is booked")

	// ErrSlotUnavailable возвращается, когда слот уже забронирован при захвате
	ErrSlotUnavailable = errors.New("timeslots: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("timeslots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("timeslots: internal error")
)
