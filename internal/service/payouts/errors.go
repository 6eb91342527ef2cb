package payouts

import "errors"

var (
	// ErrPayoutNotFound возвращается, когда выплата не найдена
	ErrPayoutNotFound = errors.New("payouts: payout not found")

	// ErrAccessDenied возвращается, когда у актора нет прав на операцию
	ErrAccessDenied = errors.New("payouts: access denied")

	// ErrNothingToPayOut возвращается при попытке собрать выплату,
	// когда у исполнителя нет невыплаченных заработков
	ErrNothingToPayOut = errors.New("payouts: no payable earnings")

	// ErrEarningsClaimed возвращается, когда конкурентная агрегация
	// успела забрать те же заработки
	ErrEarningsClaimed = errors.New("payouts: earnings already claimed by another payout")

	// ErrPayoutProfileIncomplete возвращается, когда у исполнителя
	// не заполнены платёжные реквизиты
	ErrPayoutProfileIncomplete = errors.New("payouts: payout profile is incomplete")

	// ErrPayoutNotSendable возвращается при попытке отправить выплату
	// не в статусе CREATED
	ErrPayoutNotSendable = errors.New("payouts: payout is not in a sendable status")

	// ErrProviderUnavailable возвращается, когда transient-ошибки провайдера
	// не удалось преодолеть в рамках бюджета повторов
	ErrProviderUnavailable = errors.New("payouts: payout provider unavailable")

	// ErrPayoutRejected возвращается, когда провайдер отклонил выплату
	ErrPayoutRejected = errors.New("payouts: payout rejected by provider")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payouts: internal error")
)
