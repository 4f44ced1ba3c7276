package upsert_booking_option

import (
	"github.com/m04kA/wellmio-booking/internal/service/options/models"
)

// UpsertOptionRequest HTTP request model
type UpsertOptionRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertOptionRequest) ToServiceRequest() *models.UpsertRequest {
	return &models.UpsertRequest{
		ID:    r.ID,
		Name:  r.Name,
		Value: r.Value,
	}
}
