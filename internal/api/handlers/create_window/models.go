package create_window

import "github.com/linkhub/booking-service/internal/service/schedule/models"

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	Weekday   int    `json:"weekday"`   // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	Timezone  string `json:"timezone"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateWindowRequest) ToServiceRequest(userID int64) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		OwnerID:   userID,
		Weekday:   r.Weekday,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Timezone:  r.Timezone,
	}
}
