package get_calendar

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден
	ErrItemNotFound = errors.New("get_calendar: item not found")

	// ErrDataUnavailable возвращается, когда резервации или остаток получить не удалось
	ErrDataUnavailable = errors.New("get_calendar: data unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_calendar: invalid input data")

	// ErrRangeTooLong возвращается, когда запрошенный период больше MaxCalendarSpanDays
	ErrRangeTooLong = errors.New("get_calendar: requested period is too long")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
