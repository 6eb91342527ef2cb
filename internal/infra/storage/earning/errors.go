package earning

import "errors"

var (
	// ErrEarningNotFound возвращается, когда заработок не найден
	ErrEarningNotFound = errors.New("earning.repository: earning not found")

	// ErrDuplicateEarning возвращается при попытке записать второй заработок
	// для того же бронирования (уникальный индекс booking_id)
	ErrDuplicateEarning = errors.New("earning.repository: earning already exists for booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("earning.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("earning.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("earning.repository: failed to scan row")
)
