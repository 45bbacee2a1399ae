package check_availability

import "fmt"

// validateRequest валидирует входные данные запроса.
// Порядок дат не проверяется: start > end - это вердикт invalid_input, а не ошибка.
func validateRequest(req *Request) error {
	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	if req.End.IsZero() {
		return fmt.Errorf("%w: end date is required", ErrInvalidInput)
	}

	return nil
}
