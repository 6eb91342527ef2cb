package domain

import "time"

// Earning represents the pro's credited share of a captured payment.
// Created exactly once per booking, immutable thereafter.
// Amount is in minor currency units.
type Earning struct {
	ID           string
	BookingID    string
	ProProfileID string
	Amount       int64
	CreatedAt    time.Time
}

// PayoutStatus represents the status of a payout
type PayoutStatus string

const (
	PayoutCreated PayoutStatus = "CREATED"
	PayoutSent    PayoutStatus = "SENT"
	PayoutSettled PayoutStatus = "SETTLED"
	PayoutFailed  PayoutStatus = "FAILED"
)

// Payout представляет пакетную выплату исполнителю.
// Amount фиксируется при создании как сумма позиций и не пересчитывается.
type Payout struct {
	ID           string
	ProProfileID string
	Provider     string
	Status       PayoutStatus
	Currency     string
	Amount       int64

	ProviderReference *string

	CreatedAt time.Time
	SentAt    *time.Time
}

// PayoutItem ссылка выплаты на заработок. Каждый заработок может входить
// не более чем в одну выплату за всё время (без двойных выплат).
type PayoutItem struct {
	ID        string
	PayoutID  string
	EarningID string
	Amount    int64
	CreatedAt time.Time
}

// PayoutTransitions defines the valid payout status moves:
// CREATED -> SENT -> SETTLED, FAILED reachable from CREATED or SENT.
// No transition skips a state.
var PayoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutCreated: {
		PayoutSent,
		PayoutFailed,
	},
	PayoutSent: {
		PayoutSettled,
		PayoutFailed,
	},
	PayoutSettled: {},
	PayoutFailed:  {},
}

// CanTransitionPayout checks if a payout status move is allowed
func CanTransitionPayout(from, to PayoutStatus) bool {
	allowed, exists := PayoutTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// PayoutDestination банковские реквизиты исполнителя для выплаты
type PayoutDestination struct {
	Method            string
	BankName          string
	BankAccountNumber string
	FullName          string
	DocumentID        string
}
