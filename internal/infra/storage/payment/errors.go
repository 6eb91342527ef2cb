package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrDuplicatePayment возвращается при попытке создать второй платёж
	// для того же бронирования (уникальный индекс booking_id)
	ErrDuplicatePayment = errors.New("payment.repository: payment already exists for booking")

	// ErrStatusConflict возвращается, когда CAS-обновление статуса не прошло
	ErrStatusConflict = errors.New("payment.repository: status conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
