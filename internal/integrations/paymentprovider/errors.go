package paymentprovider

import "errors"

var (
	// ErrUnavailable возвращается при сетевых ошибках, таймаутах и 5xx
	// от провайдера. Transient - операцию можно повторить с backoff.
	ErrUnavailable = errors.New("paymentprovider client: provider unavailable")

	// ErrRejected возвращается при явном бизнес-отказе провайдера (4xx).
	// Permanent - повторять операцию нельзя.
	ErrRejected = errors.New("paymentprovider client: operation rejected by provider")

	// ErrPaymentNotFound возвращается, когда провайдер не знает платёж
	ErrPaymentNotFound = errors.New("paymentprovider client: payment not found")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("paymentprovider client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentprovider client: internal error")
)
