package transition_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrInvalidTransition возвращается, когда переход не разрешён таблицей
	// жизненного цикла
	ErrInvalidTransition = errors.New("transition_booking: invalid state transition")

	// ErrAccessDenied возвращается, когда актор не может выполнить действие
	ErrAccessDenied = errors.New("transition_booking: access denied")

	// ErrStatusConflict возвращается, когда конкурентный переход успел первым
	ErrStatusConflict = errors.New("transition_booking: booking status changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)
