package handle_payment_event

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
	bookingRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/booking"
	"github.com/m04kA/wellmio-booking/internal/integrations/events"
	"github.com/m04kA/wellmio-booking/internal/integrations/payments"
)

// Результаты для метрики payment_events_total
const (
	resultApplied          = "applied"
	resultDuplicate        = "duplicate"
	resultStale            = "stale"
	resultNotFound         = "not_found"
	resultPaidAfterFailure = "paid_after_failure"
	resultIgnored          = "ignored"
	resultRejected         = "rejected"
	resultError            = "error"
)

// UseCase обработка событий платежного провайдера
type UseCase struct {
	verifier     SignatureVerifier
	bookingRepo  BookingRepository
	slots        SlotRegistry
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	verifier SignatureVerifier,
	bookingRepo BookingRepository,
	slots SlotRegistry,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &UseCase{
		verifier:     verifier,
		bookingRepo:  bookingRepo,
		slots:        slots,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет подпись и применяет событие к бронированию.
// Повторная доставка того же события ничего не меняет.
// Неизвестные типы событий и события без бронирования подтверждаются без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.verifier.Verify(req.Payload, req.Signature); err != nil {
		uc.logger.Warn("PaymentEvent: signature rejected: %v", err)
		uc.metrics.RecordPaymentEvent("unknown", resultRejected)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	event, err := payments.ParseEvent(req.Payload)
	if err != nil {
		uc.logger.Warn("PaymentEvent: %v", err)
		uc.metrics.RecordPaymentEvent("unknown", resultRejected)
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	uc.logger.Info("PaymentEvent: id=%s type=%s", event.ID, event.Type)

	var target domain.PaymentStatus
	switch event.Type {
	case payments.EventCheckoutCompleted:
		target = domain.PaymentSucceeded
	case payments.EventCheckoutExpired, payments.EventPaymentFailed:
		target = domain.PaymentFailed
	default:
		uc.logger.Info("PaymentEvent: type=%s ignored", event.Type)
		uc.metrics.RecordPaymentEvent(event.Type, resultIgnored)
		return &Response{Received: true}, nil
	}

	bookingID, err := uuid.Parse(event.BookingID())
	if err != nil {
		uc.logger.Warn("PaymentEvent: id=%s carries no valid booking id (%q)", event.ID, event.BookingID())
		uc.metrics.RecordPaymentEvent(event.Type, resultIgnored)
		return &Response{Received: true}, nil
	}

	var booking *domain.Booking
	if target == domain.PaymentSucceeded {
		booking, err = uc.confirm(ctx, bookingID)
	} else {
		booking, err = uc.fail(ctx, bookingID)
	}

	switch {
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		if err := uc.explainConflict(ctx, event, bookingID, target); err != nil {
			return nil, err
		}
		return &Response{Received: true}, nil
	case err != nil:
		uc.logger.Error("PaymentEvent: failed to apply event id=%s to booking id=%s: %v", event.ID, bookingID, err)
		uc.metrics.RecordPaymentEvent(event.Type, resultError)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.RecordPaymentEvent(event.Type, resultApplied)
	uc.logger.Info("PaymentEvent: booking id=%s is now %s", booking.ID, booking.PaymentStatus)
	uc.publish(ctx, booking)

	return &Response{Received: true}, nil
}

// explainConflict разбирает событие, которое не применилось: бронирования нет или оно уже не pending.
// Событие в любом случае подтверждается, ошибка возвращается только если бронирование не удалось прочитать.
func (uc *UseCase) explainConflict(ctx context.Context, event *payments.Event, bookingID uuid.UUID, target domain.PaymentStatus) error {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		uc.logger.Warn("PaymentEvent: booking id=%s not found, event id=%s type=%s ignored", bookingID, event.ID, event.Type)
		uc.metrics.RecordPaymentEvent(event.Type, resultNotFound)
		return nil
	case err != nil:
		uc.logger.Error("PaymentEvent: failed to read booking id=%s for event id=%s: %v", bookingID, event.ID, err)
		uc.metrics.RecordPaymentEvent(event.Type, resultError)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	switch {
	case booking.PaymentStatus == target:
		uc.logger.Info("PaymentEvent: booking id=%s is already %s, event id=%s skipped", bookingID, target, event.ID)
		uc.metrics.RecordPaymentEvent(event.Type, resultDuplicate)
	case target == domain.PaymentSucceeded && booking.PaymentStatus == domain.PaymentFailed:
		uc.logger.Error("PaymentEvent: payment completed for failed booking id=%s (slot id=%s, customer=%s), event id=%s: manual refund or rebooking required",
			bookingID, booking.SlotID, booking.CustomerIdentity, event.ID)
		uc.metrics.RecordPaymentEvent(event.Type, resultPaidAfterFailure)
	default:
		uc.logger.Info("PaymentEvent: booking id=%s is %s, event id=%s type=%s skipped", bookingID, booking.PaymentStatus, event.ID, event.Type)
		uc.metrics.RecordPaymentEvent(event.Type, resultStale)
	}
	return nil
}

func (uc *UseCase) confirm(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return uc.bookingRepo.TransitionPaymentStatus(ctx, id, domain.PaymentPending, domain.PaymentSucceeded)
}

// fail переводит бронирование в failed и освобождает слот в одной транзакции
func (uc *UseCase) fail(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.TransitionPaymentStatus(txCtx, id, domain.PaymentPending, domain.PaymentFailed)
		if err != nil {
			return err
		}
		return uc.slots.Release(txCtx, booking.SlotID)
	})
	if err != nil {
		return nil, err
	}

	uc.slots.InvalidateCache(ctx)
	return booking, nil
}

func (uc *UseCase) publish(ctx context.Context, booking *domain.Booking) {
	routingKey := events.RoutingBookingConfirmed
	if booking.PaymentStatus == domain.PaymentFailed {
		routingKey = events.RoutingBookingFailed
	}

	err := uc.publisher.Publish(ctx, routingKey, &events.BookingEvent{
		BookingID:        booking.ID.String(),
		SlotID:           booking.SlotID.String(),
		CustomerIdentity: booking.CustomerIdentity,
		PaymentStatus:    string(booking.PaymentStatus),
		OccurredAt:       uc.timeProvider.Now(),
	})
	if err != nil {
		uc.logger.Warn("PaymentEvent: failed to publish %s for booking id=%s: %v", routingKey, booking.ID, err)
	}
}
