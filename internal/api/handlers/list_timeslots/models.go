package list_timeslots

import (
	"time"

	"github.com/m04kA/wellmio-booking/internal/service/timeslots/models"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// FromServiceSlots конвертирует слоты сервиса в HTTP response
func FromServiceSlots(slots []*models.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotResponse{
			ID:        s.ID,
			StartTime: s.StartTime.UTC().Format(time.RFC3339),
			EndTime:   s.EndTime.UTC().Format(time.RFC3339),
		})
	}
	return result
}
