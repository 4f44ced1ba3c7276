package update_timeslot

import (
	"context"
	"time"

	"github.com/m04kA/wellmio-booking/internal/service/timeslots/models"
)

type SlotService interface {
	Update(ctx context.Context, id string, start, end time.Time) (*models.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
