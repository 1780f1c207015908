package confirm_hold

import (
	"time"

	confirmHold "github.com/linkhub/booking-service/internal/usecase/confirm_hold"
)

// ConfirmHoldRequest HTTP request model
type ConfirmHoldRequest struct {
	HoldToken      string  `json:"holdToken"`
	OrderReference *string `json:"orderReference,omitempty"`
}

// ConfirmedBookingResponse HTTP response model
type ConfirmedBookingResponse struct {
	ID        int64   `json:"id"`
	ServiceID int64   `json:"serviceId"`
	SlotStart string  `json:"slotStart"`
	SlotEnd   string  `json:"slotEnd"`
	Status    string  `json:"status"`
	OrderID   *string `json:"orderId,omitempty"`
	UpdatedAt string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmHoldRequest) ToUseCaseRequest(bookingID int64) *confirmHold.Request {
	return &confirmHold.Request{
		BookingID:      bookingID,
		HoldToken:      r.HoldToken,
		OrderReference: r.OrderReference,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmHold.Response) *ConfirmedBookingResponse {
	return &ConfirmedBookingResponse{
		ID:        resp.ID,
		ServiceID: resp.ServiceID,
		SlotStart: resp.SlotStart.Format(time.RFC3339),
		SlotEnd:   resp.SlotEnd.Format(time.RFC3339),
		Status:    resp.Status,
		OrderID:   resp.OrderID,
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
