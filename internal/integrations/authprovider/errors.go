package authprovider

import "errors"

var (
	// ErrInvalidToken возвращается, когда токен не прошёл проверку
	ErrInvalidToken = errors.New("authprovider client: invalid access token")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authprovider client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authprovider client: invalid response")
)
