package prodirectory

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль исполнителя не найден
	ErrProfileNotFound = errors.New("prodirectory client: pro profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("prodirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("prodirectory client: invalid response")
)
