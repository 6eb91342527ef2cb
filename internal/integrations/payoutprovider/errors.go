package payoutprovider

import "errors"

var (
	// ErrUnavailable возвращается при сетевых ошибках, таймаутах и 5xx.
	// Transient - операцию можно повторить с backoff.
	ErrUnavailable = errors.New("payoutprovider client: provider unavailable")

	// ErrRejected возвращается при явном отказе провайдера (4xx).
	// Permanent - повторять операцию нельзя.
	ErrRejected = errors.New("payoutprovider client: operation rejected by provider")

	// ErrPayoutNotFound возвращается, когда провайдер не знает выплату
	ErrPayoutNotFound = errors.New("payoutprovider client: payout not found")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("payoutprovider client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payoutprovider client: internal error")
)
