package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus статус временного слота
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// TimeSlot интервал времени, который можно забронировать
type TimeSlot struct {
	ID        uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    SlotStatus
	CreatedAt time.Time
}

// IsAvailable returns true if the slot can be claimed
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// ValidInterval проверяет, что конец интервала строго позже начала
func ValidInterval(start, end time.Time) bool {
	return end.After(start)
}
