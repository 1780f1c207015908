package get_available_slots

import (
	"fmt"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if req.From.After(req.To) {
		return ErrInvalidRange
	}

	if req.To.Sub(req.From) > time.Duration(domain.MaxRangeDays)*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrRangeTooWide, domain.MaxRangeDays)
	}

	return nil
}
