package option

import "errors"

var (
	// ErrOptionNotFound возвращается, когда настройка не найдена
	ErrOptionNotFound = errors.New("option.repository: option not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("option.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("option.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("option.repository: failed to scan row")
)
