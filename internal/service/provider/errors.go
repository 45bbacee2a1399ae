package provider

import "errors"

var (
	// ErrItemNotFound возвращается, когда источник не знает такого товара
	ErrItemNotFound = errors.New("provider: item not found")

	// ErrUnavailable возвращается, когда бронирования или остаток получить не удалось
	ErrUnavailable = errors.New("provider: data unavailable")
)
