package snapshot

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден или снят с проката
	ErrItemNotFound = errors.New("snapshot: item not found")

	// ErrDataUnavailable возвращается, когда не удалось получить резервации или остаток
	ErrDataUnavailable = errors.New("snapshot: data unavailable")

	// ErrInternal возвращается при внутренних ошибках (например, чтение конфигурации)
	ErrInternal = errors.New("snapshot: internal error")
)
