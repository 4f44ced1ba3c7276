package timeslots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListAvailable(ctx context.Context, from, to *time.Time) ([]*domain.TimeSlot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	Update(ctx context.Context, id uuid.UUID, start, end time.Time) (*domain.TimeSlot, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Claim(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	Release(ctx context.Context, id uuid.UUID) error
}

// SlotCache кэш списка свободных слотов
type SlotCache interface {
	GetAvailable(ctx context.Context) ([]*domain.TimeSlot, bool, error)
	SetAvailable(ctx context.Context, slots []*domain.TimeSlot) error
	Invalidate(ctx context.Context) error
}

// LocationProvider источник часового пояса для фильтра по дате
type LocationProvider interface {
	Location(ctx context.Context) *time.Location
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopCache используется, когда кэш выключен
type NopCache struct{}

func (NopCache) GetAvailable(ctx context.Context) ([]*domain.TimeSlot, bool, error) {
	return nil, false, nil
}

func (NopCache) SetAvailable(ctx context.Context, slots []*domain.TimeSlot) error {
	return nil
}

func (NopCache) Invalidate(ctx context.Context) error {
	return nil
}
