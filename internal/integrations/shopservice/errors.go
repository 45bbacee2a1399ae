package shopservice

import "errors"

var (
	// ErrItemNotFound возвращается, когда магазин не знает такого товара
	ErrItemNotFound = errors.New("shopservice client: item not found")

	// ErrInternal возвращается при внутренних ошибках клиента (запрос не отправлен или не дошел)
	ErrInternal = errors.New("shopservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("shopservice client: invalid response")
)
