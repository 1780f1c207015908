package create_block

import (
	"time"

	"github.com/linkhub/booking-service/internal/service/bookings/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	ServiceID int64   `json:"serviceId"`
	SlotStart string  `json:"slotStart"` // ISO 8601
	SlotEnd   string  `json:"slotEnd"`   // ISO 8601
	Notes     *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(userID int64) (*models.CreateBlockRequest, error) {
	slotStart, err := time.Parse(time.RFC3339, r.SlotStart)
	if err != nil {
		return nil, err
	}

	slotEnd, err := time.Parse(time.RFC3339, r.SlotEnd)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockRequest{
		UserID:    userID,
		ServiceID: r.ServiceID,
		SlotStart: slotStart,
		SlotEnd:   slotEnd,
		Notes:     r.Notes,
	}, nil
}
