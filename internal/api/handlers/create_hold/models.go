package create_hold

import (
	"time"

	createHold "github.com/linkhub/booking-service/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	SlotStart  string  `json:"slotStart"` // ISO 8601
	SlotEnd    string  `json:"slotEnd"`   // ISO 8601
	BuyerEmail *string `json:"buyerEmail,omitempty"`
	BuyerName  *string `json:"buyerName,omitempty"`
	BuyerPhone *string `json:"buyerPhone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// HoldResponse HTTP response model
// Единственное место, где клиенту возвращается holdToken
type HoldResponse struct {
	ID            int64  `json:"id"`
	ServiceID     int64  `json:"serviceId"`
	SlotStart     string `json:"slotStart"`
	SlotEnd       string `json:"slotEnd"`
	Status        string `json:"status"`
	HoldToken     string `json:"holdToken"`
	HoldExpiresAt string `json:"holdExpiresAt"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest(serviceID int64) (*createHold.Request, error) {
	slotStart, err := time.Parse(time.RFC3339, r.SlotStart)
	if err != nil {
		return nil, err
	}

	slotEnd, err := time.Parse(time.RFC3339, r.SlotEnd)
	if err != nil {
		return nil, err
	}

	return &createHold.Request{
		ServiceID:  serviceID,
		SlotStart:  slotStart,
		SlotEnd:    slotEnd,
		BuyerEmail: r.BuyerEmail,
		BuyerName:  r.BuyerName,
		BuyerPhone: r.BuyerPhone,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		ID:            resp.ID,
		ServiceID:     resp.ServiceID,
		SlotStart:     resp.SlotStart.Format(time.RFC3339),
		SlotEnd:       resp.SlotEnd.Format(time.RFC3339),
		Status:        resp.Status,
		HoldToken:     resp.HoldToken,
		HoldExpiresAt: resp.HoldExpiresAt.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
