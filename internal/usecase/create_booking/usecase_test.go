package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/wellmio-booking/internal/domain"
	"github.com/m04kA/wellmio-booking/internal/infra/storage/memory"
	"github.com/m04kA/wellmio-booking/internal/integrations/payments"
	"github.com/m04kA/wellmio-booking/internal/service/options"
	optionModels "github.com/m04kA/wellmio-booking/internal/service/options/models"
	"github.com/m04kA/wellmio-booking/internal/service/timeslots"
	"github.com/m04kA/wellmio-booking/pkg/logger"
)

var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return testNow }

type fakeGateway struct {
	mu       sync.Mutex
	err      error
	requests []*payments.CheckoutRequest
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req *payments.CheckoutRequest) (*payments.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	id := fmt.Sprintf("cs_%d", len(g.requests))
	return &payments.CheckoutSession{ID: id, URL: "https://checkout.example/" + id}, nil
}

type fakeMetrics struct {
	mu      sync.Mutex
	results map[string]int
}

func (m *fakeMetrics) RecordBooking(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.results == nil {
		m.results = make(map[string]int)
	}
	m.results[result]++
}

type fixture struct {
	store   *memory.Store
	slots   *timeslots.Service
	options *options.Service
	gateway *fakeGateway
	metrics *fakeMetrics
	useCase *UseCase
}

type utcLocation struct{}

func (utcLocation) Location(ctx context.Context) *time.Location { return time.UTC }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.Nop()
	store := memory.NewStore()
	slotSvc := timeslots.NewService(store.Slots(), nil, utcLocation{}, log).WithTimeProvider(fixedClock{})
	optionSvc := options.NewService(store.Options(), store.TxManager(), time.UTC, log)
	gateway := &fakeGateway{}
	metrics := &fakeMetrics{}

	uc := NewUseCase(
		slotSvc,
		store.Bookings(),
		optionSvc,
		gateway,
		store.TxManager(),
		CheckoutConfig{ProductName: "Massage chair", SuccessURL: "https://s/?bookingId={BOOKING_ID}", CancelURL: "https://c"},
		metrics,
		log,
	).WithTimeProvider(fixedClock{})

	return &fixture{
		store:   store,
		slots:   slotSvc,
		options: optionSvc,
		gateway: gateway,
		metrics: metrics,
		useCase: uc,
	}
}

func (f *fixture) createSlot(t *testing.T, start time.Time) string {
	t.Helper()
	slot, err := f.slots.Create(context.Background(), start, start.Add(30*time.Minute))
	require.NoError(t, err)
	return slot.ID
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotID := f.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))

	resp, err := f.useCase.Execute(ctx, &Request{SlotID: slotID, CustomerIdentity: " anna@example.com "})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Equal(t, slotID, resp.TimeSlot.ID)
	assert.Equal(t, string(domain.SlotBooked), resp.TimeSlot.Status)
	assert.Equal(t, "anna@example.com", resp.CustomerIdentity)
	assert.Equal(t, "https://checkout.example/cs_1", resp.EntryURL)

	require.Len(t, f.gateway.requests, 1)
	assert.Equal(t, int64(15000), f.gateway.requests[0].AmountMinor)
	assert.Equal(t, "SEK", f.gateway.requests[0].Currency)
	assert.Equal(t, resp.ID, f.gateway.requests[0].BookingID)
	assert.Equal(t, "https://s/?bookingId="+resp.ID, f.gateway.requests[0].SuccessURL)

	booking, err := f.store.Bookings().GetByID(ctx, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.NotNil(t, booking.PaymentSessionID)
	assert.Equal(t, "cs_1", *booking.PaymentSessionID)

	available, err := f.slots.ListAvailable(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, available)
	assert.Equal(t, 1, f.metrics.results[resultCreated])
}

func TestUseCase_Execute_UsesStoredPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotID := f.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))

	_, err := f.options.Upsert(ctx, &optionModels.UpsertRequest{ID: uuid.NewString(), Name: "price", Value: "50.00"})
	require.NoError(t, err)

	_, err = f.useCase.Execute(ctx, &Request{SlotID: slotID, CustomerIdentity: "user-1"})

	require.NoError(t, err)
	require.Len(t, f.gateway.requests, 1)
	assert.Equal(t, int64(5000), f.gateway.requests[0].AmountMinor)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pastSlot := f.createSlot(t, testNow.Add(-time.Hour))
	startingNow := f.createSlot(t, testNow)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "invalid slot id", req: &Request{SlotID: "slot-1", CustomerIdentity: "a"}, wantErr: ErrInvalidInput},
		{name: "braced uuid", req: &Request{SlotID: "{" + uuid.NewString() + "}", CustomerIdentity: "a"}, wantErr: ErrInvalidInput},
		{name: "empty identity", req: &Request{SlotID: uuid.NewString(), CustomerIdentity: "   "}, wantErr: ErrInvalidInput},
		{name: "identity too long", req: &Request{SlotID: uuid.NewString(), CustomerIdentity: strings.Repeat("a", 300)}, wantErr: ErrInvalidInput},
		{name: "unknown slot", req: &Request{SlotID: uuid.NewString(), CustomerIdentity: "a"}, wantErr: ErrSlotNotFound},
		{name: "past slot", req: &Request{SlotID: pastSlot, CustomerIdentity: "a"}, wantErr: ErrSlotInPast},
		{name: "slot starting now", req: &Request{SlotID: startingNow, CustomerIdentity: "a"}, wantErr: ErrSlotInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.useCase.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.gateway.requests)
}

func TestUseCase_Execute_BookingWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	far := f.createSlot(t, testNow.AddDate(0, 0, 20))
	near := f.createSlot(t, testNow.AddDate(0, 0, 5))

	_, err := f.options.Upsert(ctx, &optionModels.UpsertRequest{ID: uuid.NewString(), Name: "booking_window_days", Value: "14"})
	require.NoError(t, err)

	_, err = f.useCase.Execute(ctx, &Request{SlotID: far, CustomerIdentity: "a"})
	assert.ErrorIs(t, err, ErrOutsideBookingWindow)

	_, err = f.useCase.Execute(ctx, &Request{SlotID: near, CustomerIdentity: "a"})
	assert.NoError(t, err)
}

func TestUseCase_Execute_SecondBookingConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotID := f.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))

	_, err := f.useCase.Execute(ctx, &Request{SlotID: slotID, CustomerIdentity: "first"})
	require.NoError(t, err)

	_, err = f.useCase.Execute(ctx, &Request{SlotID: slotID, CustomerIdentity: "second"})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	bookings, err := f.store.Bookings().List(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestUseCase_Execute_ConcurrentRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotID := f.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))

	const workers = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.useCase.Execute(ctx, &Request{SlotID: slotID, CustomerIdentity: fmt.Sprintf("user-%d", i)})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotUnavailable):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	bookings, err := f.store.Bookings().List(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestUseCase_Execute_PaymentFailureReleasesSlot(t *testing.T) {
	tests := []struct {
		name       string
		gatewayErr error
		wantErr    error
	}{
		{name: "provider rejected", gatewayErr: payments.ErrRejected, wantErr: ErrPaymentUnavailable},
		{name: "provider down", gatewayErr: payments.ErrUnavailable, wantErr: ErrPaymentUnavailable},
		{name: "provider timeout", gatewayErr: payments.ErrTimeout, wantErr: ErrPaymentTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			slotID := f.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))
			f.gateway.err = tt.gatewayErr

			_, err := f.useCase.Execute(ctx, &Request{SlotID: slotID, CustomerIdentity: "a"})
			assert.ErrorIs(t, err, tt.wantErr)

			available, err := f.slots.ListAvailable(ctx, nil)
			require.NoError(t, err)
			require.Len(t, available, 1)
			assert.Equal(t, slotID, available[0].ID)

			bookings, err := f.store.Bookings().List(ctx)
			require.NoError(t, err)
			require.Len(t, bookings, 1)
			assert.Equal(t, domain.PaymentFailed, bookings[0].PaymentStatus)

			// слот снова можно забронировать
			f.gateway.err = nil
			_, err = f.useCase.Execute(ctx, &Request{SlotID: slotID, CustomerIdentity: "b"})
			assert.NoError(t, err)
		})
	}
}

type failingTxManager struct {
	err error
}

func (m failingTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.err
}

func TestUseCase_Execute_StorageFailures(t *testing.T) {
	tests := []struct {
		name       string
		txErr      error
		wantErr    error
		wantResult string
	}{
		{
			name:       "deadline exceeded",
			txErr:      fmt.Errorf("txmanager: begin: %w", context.DeadlineExceeded),
			wantErr:    ErrStorageTimeout,
			wantResult: resultTimeout,
		},
		{
			name:       "connection lost",
			txErr:      errors.New("txmanager: begin: connection refused"),
			wantErr:    ErrInternal,
			wantResult: resultError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			slotID := f.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))
			f.useCase.txManager = failingTxManager{err: tt.txErr}

			_, err := f.useCase.Execute(ctx, &Request{SlotID: slotID, CustomerIdentity: "a"})

			require.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, ErrSlotUnavailable)
			assert.Equal(t, 1, f.metrics.results[tt.wantResult])
			assert.Empty(t, f.gateway.requests)
		})
	}
}
