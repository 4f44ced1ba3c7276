package list_booking_options

import (
	"time"

	"github.com/m04kA/wellmio-booking/internal/service/options/models"
)

// OptionResponse HTTP response model
type OptionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	CreatedAt string `json:"created_at"`
}

// FromServiceOption конвертирует настройку сервиса в HTTP response
func FromServiceOption(opt *models.Option) *OptionResponse {
	return &OptionResponse{
		ID:        opt.ID,
		Name:      opt.Name,
		Value:     opt.Value,
		CreatedAt: opt.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FromServiceOptions конвертирует список настроек
func FromServiceOptions(opts []*models.Option) []*OptionResponse {
	result := make([]*OptionResponse, 0, len(opts))
	for _, opt := range opts {
		result = append(result, FromServiceOption(opt))
	}
	return result
}
