package confirm_hold

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.HoldToken == "" {
		return fmt.Errorf("%w: holdToken is required", ErrInvalidInput)
	}

	if req.OrderReference != nil && *req.OrderReference == "" {
		return fmt.Errorf("%w: orderReference must not be empty", ErrInvalidInput)
	}

	return nil
}
