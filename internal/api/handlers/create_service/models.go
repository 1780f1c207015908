package create_service

import "github.com/linkhub/booking-service/internal/service/schedule/models"

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	BufferMinutes   int    `json:"bufferMinutes"`
	Timezone        string `json:"timezone"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest(userID int64) *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		OwnerID:         userID,
		Title:           r.Title,
		DurationMinutes: r.DurationMinutes,
		BufferMinutes:   r.BufferMinutes,
		Timezone:        r.Timezone,
	}
}
