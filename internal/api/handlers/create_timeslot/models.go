package create_timeslot

import (
	"fmt"
	"time"

	"github.com/m04kA/wellmio-booking/internal/service/timeslots/models"
)

// SlotRequest HTTP request model
type SlotRequest struct {
	StartTime string `json:"start_time"` // RFC 3339
	EndTime   string `json:"end_time"`   // RFC 3339
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// Parse разбирает границы слота
func (r *SlotRequest) Parse() (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_time: %w", err)
	}
	return start, end, nil
}

// FromServiceSlot конвертирует слот сервиса в HTTP response
func FromServiceSlot(slot *models.Slot) *SlotResponse {
	return &SlotResponse{
		ID:        slot.ID,
		StartTime: slot.StartTime.UTC().Format(time.RFC3339),
		EndTime:   slot.EndTime.UTC().Format(time.RFC3339),
		Status:    slot.Status,
	}
}
