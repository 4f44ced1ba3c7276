package list_booking_options

import (
	"context"

	"github.com/m04kA/wellmio-booking/internal/service/options/models"
)

type OptionService interface {
	List(ctx context.Context) ([]*models.Option, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
