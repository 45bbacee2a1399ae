package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
)

var (
	// ErrItemNotFound возвращается, когда товар не найден
	ErrItemNotFound = errors.New("create_reservation: item not found")

	// ErrDataUnavailable возвращается, когда резервации или остаток получить не удалось
	ErrDataUnavailable = errors.New("create_reservation: data unavailable")

	// ErrRejected возвращается, когда диапазон не прошел проверку доступности.
	// Вердикт доступен через errors.As(err, *RejectedError).
	ErrRejected = errors.New("create_reservation: range rejected")

	// ErrConcurrentUpdate возвращается, когда параллельная резервация изменила данные; запрос можно повторить
	ErrConcurrentUpdate = errors.New("create_reservation: concurrent update, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// RejectedError отказ с вердиктом резолвера
type RejectedError struct {
	Verdict availability.Verdict
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrRejected, e.Verdict.Outcome)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}
