package get_calendar

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.From.After(req.To) {
		return fmt.Errorf("%w: from %s is after to %s", ErrInvalidInput, req.From, req.To)
	}

	// Включительно: from..to
	if span := req.From.DaysUntil(req.To) + 1; span > domain.MaxCalendarSpanDays {
		return fmt.Errorf("%w: %d days, max %d", ErrRangeTooLong, span, domain.MaxCalendarSpanDays)
	}

	return nil
}
