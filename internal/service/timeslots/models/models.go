package models

import (
	"time"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// Slot временной слот
type Slot struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// FromDomainSlot конвертирует доменную модель в модель сервиса
func FromDomainSlot(slot *domain.TimeSlot) *Slot {
	return &Slot{
		ID:        slot.ID.String(),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    string(slot.Status),
	}
}

// FromDomainSlotList конвертирует список слотов
func FromDomainSlotList(slots []*domain.TimeSlot) []*Slot {
	result := make([]*Slot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, FromDomainSlot(slot))
	}
	return result
}
