package payout

import "errors"

var (
	// ErrPayoutNotFound возвращается, когда выплата не найдена
	ErrPayoutNotFound = errors.New("payout.repository: payout not found")

	// ErrEarningAlreadyClaimed возвращается, когда заработок уже включён
	// в другую выплату (уникальный индекс earning_id в payout_items)
	ErrEarningAlreadyClaimed = errors.New("payout.repository: earning already claimed by another payout")

	// ErrStatusConflict возвращается, когда CAS-обновление статуса не прошло
	ErrStatusConflict = errors.New("payout.repository: status conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payout.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payout.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payout.repository: failed to scan row")
)
