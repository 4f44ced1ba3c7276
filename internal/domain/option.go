package domain

import (
	"time"

	"github.com/google/uuid"
)

// OptionName имя настройки бронирования
type OptionName string

const (
	OptionPrice             OptionName = "price"
	OptionDurationMinutes   OptionName = "duration_minutes"
	OptionCurrency          OptionName = "currency"
	OptionTimezone          OptionName = "timezone"
	OptionMaxBookingsPerDay OptionName = "max_bookings_per_day"
	OptionBookingWindowDays OptionName = "booking_window_days"
)

// BookingOption именованное значение конфигурации, управляемое администратором
type BookingOption struct {
	ID        uuid.UUID
	Name      OptionName
	Value     string
	CreatedAt time.Time
}

// OptionNames допустимые имена настроек
var OptionNames = []OptionName{
	OptionPrice,
	OptionDurationMinutes,
	OptionCurrency,
	OptionTimezone,
	OptionMaxBookingsPerDay,
	OptionBookingWindowDays,
}

// IsKnown returns true if the name is one of OptionNames
func (n OptionName) IsKnown() bool {
	for _, known := range OptionNames {
		if n == known {
			return true
		}
	}
	return false
}

// IsNumeric returns true if the option value must be a positive number
func (n OptionName) IsNumeric() bool {
	switch n {
	case OptionPrice, OptionDurationMinutes, OptionMaxBookingsPerDay, OptionBookingWindowDays:
		return true
	}
	return false
}

// IsDecimal returns true if the option accepts a fractional value
func (n OptionName) IsDecimal() bool {
	return n == OptionPrice
}
