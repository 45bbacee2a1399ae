package get_quote

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден
	ErrItemNotFound = errors.New("get_quote: item not found")

	// ErrDataUnavailable возвращается, когда резервации или остаток получить не удалось
	ErrDataUnavailable = errors.New("get_quote: data unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrInvalidPricing возвращается, когда цена товара или тарифная сетка некорректны
	ErrInvalidPricing = errors.New("get_quote: invalid pricing configuration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)
