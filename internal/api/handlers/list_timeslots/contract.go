package list_timeslots

import (
	"context"
	"time"

	"github.com/m04kA/wellmio-booking/internal/service/timeslots/models"
)

type SlotService interface {
	ListAvailable(ctx context.Context, date *time.Time) ([]*models.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
