package handle_payment_event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
	"github.com/m04kA/wellmio-booking/internal/integrations/events"
)

// SignatureVerifier интерфейс проверки подписи webhook
type SignatureVerifier interface {
	Verify(payload []byte, header string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	TransitionPaymentStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) (*domain.Booking, error)
}

// SlotRegistry интерфейс реестра слотов
type SlotRegistry interface {
	Release(ctx context.Context, id uuid.UUID) error
	InvalidateCache(ctx context.Context)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event *events.BookingEvent) error
}

// MetricsRecorder интерфейс учёта обработанных событий
type MetricsRecorder interface {
	RecordPaymentEvent(eventType, result string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
