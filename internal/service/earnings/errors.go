package earnings

import "errors"

var (
	// ErrEarningExists возвращается при повторной попытке записать заработок
	// для того же бронирования
	ErrEarningExists = errors.New("earnings: earning already recorded for booking")

	// ErrPaymentNotCaptured возвращается, когда платёж бронирования не списан
	ErrPaymentNotCaptured = errors.New("earnings: payment is not captured")

	// ErrNoProAssigned возвращается, когда у бронирования нет исполнителя
	ErrNoProAssigned = errors.New("earnings: booking has no assigned pro")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("earnings: internal error")
)
