package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/linkhub/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного свободного слота
type SlotResponse struct {
	Start string `json:"start"` // ISO 8601
	End   string `json:"end"`   // ISO 8601
}

// SlotsResponse HTTP модель ответа со списком слотов
type SlotsResponse struct {
	ServiceID int64          `json:"serviceId"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Timezone  string         `json:"timezone"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		}
	}

	return &SlotsResponse{
		ServiceID: resp.ServiceID,
		From:      resp.From.Format(time.RFC3339),
		To:        resp.To.Format(time.RFC3339),
		Timezone:  resp.Timezone,
		Slots:     slots,
	}
}
