package payments

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("payments: booking not found")

	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payments: payment not found")

	// ErrAccessDenied возвращается, когда у актора нет прав на операцию
	ErrAccessDenied = errors.New("payments: access denied")

	// ErrPaymentNotAuthorized возвращается при попытке списать платёж,
	// который не находится в статусе AUTHORIZED
	ErrPaymentNotAuthorized = errors.New("payments: payment is not authorized")

	// ErrPaymentNotRefundable возвращается при попытке вернуть платёж,
	// который не находится в статусе AUTHORIZED или CAPTURED
	ErrPaymentNotRefundable = errors.New("payments: payment is not refundable")

	// ErrPreauthRejected возвращается, когда провайдер отклонил
	// создание предавторизации
	ErrPreauthRejected = errors.New("payments: preauth rejected by provider")

	// ErrCaptureFailed возвращается, когда провайдер отклонил списание
	// или бюджет повторов исчерпан. Требует внимания оператора.
	ErrCaptureFailed = errors.New("payments: capture failed")

	// ErrProviderUnavailable возвращается, когда transient-ошибки провайдера
	// не удалось преодолеть в рамках бюджета повторов
	ErrProviderUnavailable = errors.New("payments: payment provider unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
