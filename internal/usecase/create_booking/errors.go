package create_booking

import "errors"

var (
	// ErrAccessDenied возвращается, когда актор не может создавать бронирования
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrProNotFound возвращается, когда профиль исполнителя не найден
	ErrProNotFound = errors.New("create_booking: pro profile not found")

	// ErrProSuspended возвращается, когда профиль исполнителя приостановлен
	ErrProSuspended = errors.New("create_booking: pro profile is suspended")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
