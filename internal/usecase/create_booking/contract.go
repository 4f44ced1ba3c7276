package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
	"github.com/m04kA/wellmio-booking/internal/integrations/payments"
	optionModels "github.com/m04kA/wellmio-booking/internal/service/options/models"
)

// SlotRegistry интерфейс реестра слотов
type SlotRegistry interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	Claim(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	Release(ctx context.Context, id uuid.UUID) error
	InvalidateCache(ctx context.Context)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error
	TransitionPaymentStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) (*domain.Booking, error)
}

// OptionsProvider интерфейс источника настроек бронирования
type OptionsProvider interface {
	Pricing(ctx context.Context) (*optionModels.Pricing, error)
	BookingWindowDays(ctx context.Context) (int, error)
}

// PaymentGateway интерфейс платежного провайдера
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req *payments.CheckoutRequest) (*payments.CheckoutSession, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс учёта результатов бронирования
type MetricsRecorder interface {
	RecordBooking(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
