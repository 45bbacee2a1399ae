package check_availability

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден
	ErrItemNotFound = errors.New("check_availability: item not found")

	// ErrDataUnavailable возвращается, когда резервации или остаток получить не удалось
	ErrDataUnavailable = errors.New("check_availability: data unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
