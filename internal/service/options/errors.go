package options

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("options: invalid input data")

	// ErrUnknownName возвращается для имени вне списка допустимых настроек
	ErrUnknownName = errors.New("options: unknown option name")

	// ErrInvalidValue возвращается, когда значение не проходит проверку для своего имени
	ErrInvalidValue = errors.New("options: invalid option value")

	// ErrNameTaken возвращается, когда имя уже занято другой настройкой
	ErrNameTaken = errors.New("options: option name is used by another option")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("options: internal error")
)
