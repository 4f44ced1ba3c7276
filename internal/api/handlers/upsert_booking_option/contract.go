package upsert_booking_option

import (
	"context"

	"github.com/m04kA/wellmio-booking/internal/service/options/models"
)

type OptionService interface {
	Upsert(ctx context.Context, req *models.UpsertRequest) (*models.Option, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
