package create_payout

import "errors"

var (
	// ErrAccessDenied возвращается, когда актор не может собирать выплату
	ErrAccessDenied = errors.New("create_payout: access denied")

	// ErrNothingToPayOut возвращается, когда у исполнителя нет
	// невыплаченных заработков
	ErrNothingToPayOut = errors.New("create_payout: no payable earnings")

	// ErrPayoutInProgress возвращается, когда агрегация по этому
	// исполнителю уже идёт
	ErrPayoutInProgress = errors.New("create_payout: payout aggregation already in progress")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_payout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payout: internal error")
)
