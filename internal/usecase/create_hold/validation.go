package create_hold

import (
	"fmt"
	"strings"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.SlotStart.IsZero() || req.SlotEnd.IsZero() {
		return fmt.Errorf("%w: slotStart and slotEnd are required", ErrInvalidInput)
	}

	if !req.SlotStart.Before(req.SlotEnd) {
		return fmt.Errorf("%w: slotStart must be before slotEnd", ErrInvalidInput)
	}

	if req.BuyerEmail != nil && !strings.Contains(*req.BuyerEmail, "@") {
		return fmt.Errorf("%w: invalid buyer email", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlotBounds дешёвые проверки до открытия транзакции
// Точная ревалидация тайлинга выполняется внутри транзакции; длительность
// здесь не сверяется, т.к. на границах перевода часов elapsed-длительность
// слота отличается от wall-clock длительности услуги
func validateSlotBounds(req *Request, now time.Time) error {
	if req.SlotStart.Before(now) {
		return fmt.Errorf("%w: slot starts in the past", ErrInvalidSlot)
	}

	return nil
}
