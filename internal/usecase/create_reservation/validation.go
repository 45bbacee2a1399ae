package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	if req.OrderRef != nil {
		if *req.OrderRef == "" {
			return fmt.Errorf("%w: orderRef must not be empty", ErrInvalidInput)
		}
		if len(*req.OrderRef) > domain.MaxOrderRefLength {
			return fmt.Errorf("%w: orderRef is longer than %d characters", ErrInvalidInput, domain.MaxOrderRefLength)
		}
	}

	return nil
}
