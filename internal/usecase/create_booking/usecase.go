package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
	"github.com/m04kA/wellmio-booking/internal/integrations/payments"
	"github.com/m04kA/wellmio-booking/internal/service/timeslots"
)

// Результаты для метрики bookings_total
const (
	resultCreated        = "created"
	resultRejected       = "rejected"
	resultConflict       = "conflict"
	resultPaymentFailure = "payment_failure"
	resultTimeout        = "timeout"
	resultError          = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slots        SlotRegistry
	bookingRepo  BookingRepository
	options      OptionsProvider
	gateway      PaymentGateway
	txManager    TransactionManager
	checkout     CheckoutConfig
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slots SlotRegistry,
	bookingRepo BookingRepository,
	options OptionsProvider,
	gateway PaymentGateway,
	txManager TransactionManager,
	checkout CheckoutConfig,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:        slots,
		bookingRepo:  bookingRepo,
		options:      options,
		gateway:      gateway,
		txManager:    txManager,
		checkout:     checkout,
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

// Execute выполняет use case создания бронирования.
// Захват слота и создание бронирования выполняются в одной транзакции;
// checkout-сессия открывается после коммита. Если провайдер не ответил,
// бронирование помечается failed, а слот освобождается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%s", req.SlotID)

	// 1. Валидация входных данных
	slotID, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.RecordBooking(resultRejected)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем слот
	slot, err := uc.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, timeslots.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%s not found", slotID)
			uc.metrics.RecordBooking(resultRejected)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", slotID, err)
		return nil, uc.storageFailure(ctx, "failed to get slot", err)
	}

	if !slot.StartTime.After(now) {
		uc.logger.Warn("CreateBooking: slot id=%s started at %s", slotID, slot.StartTime)
		uc.metrics.RecordBooking(resultRejected)
		return nil, ErrSlotInPast
	}

	// 4. Горизонт бронирования и цена
	windowDays, err := uc.options.BookingWindowDays(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to read booking window: %v", err)
		return nil, uc.storageFailure(ctx, "failed to read booking window", err)
	}
	if windowDays > 0 && slot.StartTime.After(now.AddDate(0, 0, windowDays)) {
		uc.logger.Warn("CreateBooking: slot id=%s is beyond %d days window", slotID, windowDays)
		uc.metrics.RecordBooking(resultRejected)
		return nil, ErrOutsideBookingWindow
	}

	pricing, err := uc.options.Pricing(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to read pricing: %v", err)
		return nil, uc.storageFailure(ctx, "failed to read pricing", err)
	}

	// 5. Захватываем слот и создаём pending бронирование в одной транзакции
	var (
		claimed *domain.TimeSlot
		booking *domain.Booking
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		claimed, err = uc.slots.Claim(txCtx, slotID)
		if err != nil {
			if errors.Is(err, timeslots.ErrSlotUnavailable) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("failed to claim slot: %w", err)
		}

		booking, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:               uuid.New(),
			SlotID:           slotID,
			CustomerIdentity: strings.TrimSpace(req.CustomerIdentity),
			PaymentStatus:    domain.PaymentPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			uc.logger.Warn("CreateBooking: slot id=%s already booked", slotID)
			uc.metrics.RecordBooking(resultConflict)
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed for slot id=%s: %v", slotID, err)
		return nil, uc.storageFailure(ctx, "transaction failed", err)
	}

	uc.slots.InvalidateCache(ctx)
	uc.logger.Info("CreateBooking: booking id=%s holds slot id=%s", booking.ID, slotID)

	// 6. Открываем checkout-сессию
	session, err := uc.gateway.CreateCheckoutSession(ctx, &payments.CheckoutRequest{
		AmountMinor: pricing.AmountMinor(),
		Currency:    pricing.Currency,
		ProductName: uc.checkout.ProductName,
		SuccessURL:  strings.ReplaceAll(uc.checkout.SuccessURL, BookingIDPlaceholder, booking.ID.String()),
		CancelURL:   strings.ReplaceAll(uc.checkout.CancelURL, BookingIDPlaceholder, booking.ID.String()),
		BookingID:   booking.ID.String(),
	})
	if err == nil {
		err = uc.bookingRepo.SetPaymentSession(ctx, booking.ID, session.ID)
	}
	if err != nil {
		uc.logger.Error("CreateBooking: checkout failed for booking id=%s: %v", booking.ID, err)
		uc.compensate(ctx, booking)
		uc.metrics.RecordBooking(resultPaymentFailure)

		if errors.Is(err, payments.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	booking.PaymentSessionID = &session.ID
	uc.metrics.RecordBooking(resultCreated)
	uc.logger.Info("CreateBooking: booking id=%s awaiting payment, session=%s", booking.ID, session.ID)

	return &Response{
		ID:               booking.ID.String(),
		CustomerIdentity: booking.CustomerIdentity,
		TimeSlot: TimeSlot{
			ID:        claimed.ID.String(),
			StartTime: claimed.StartTime,
			EndTime:   claimed.EndTime,
			Status:    string(claimed.Status),
		},
		PaymentStatus: string(booking.PaymentStatus),
		EntryURL:      session.URL,
		CreatedAt:     booking.CreatedAt,
	}, nil
}

// storageFailure оборачивает ошибку хранилища: истёкший дедлайн даёт ErrStorageTimeout, остальное ErrInternal
func (uc *UseCase) storageFailure(ctx context.Context, step string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		uc.metrics.RecordBooking(resultTimeout)
		return fmt.Errorf("%w: %s: %v", ErrStorageTimeout, step, err)
	}
	uc.metrics.RecordBooking(resultError)
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}

// compensate помечает бронирование failed и освобождает слот.
// Выполняется без отмены исходного контекста: запрос мог уже истечь.
func (uc *UseCase) compensate(ctx context.Context, booking *domain.Booking) {
	ctx = context.WithoutCancel(ctx)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookingRepo.TransitionPaymentStatus(txCtx, booking.ID, domain.PaymentPending, domain.PaymentFailed); err != nil {
			return err
		}
		return uc.slots.Release(txCtx, booking.SlotID)
	})
	if err != nil {
		uc.logger.Error("CreateBooking: compensation failed for booking id=%s, slot id=%s: %v",
			booking.ID, booking.SlotID, err)
		return
	}

	uc.slots.InvalidateCache(ctx)
	uc.logger.Warn("CreateBooking: booking id=%s marked failed, slot id=%s released", booking.ID, booking.SlotID)
}
