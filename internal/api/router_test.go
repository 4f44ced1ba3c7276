package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBookingHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/create_booking"
	createTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/create_timeslot"
	deleteTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/delete_timeslot"
	getBookingHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/get_booking"
	listBookingOptionsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_booking_options"
	listBookingsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_bookings"
	listTimeslotsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_timeslots"
	paymentWebhookHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/payment_webhook"
	updateTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/update_timeslot"
	upsertBookingOptionHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/upsert_booking_option"
	"github.com/m04kA/wellmio-booking/internal/api/middleware"
	"github.com/m04kA/wellmio-booking/internal/infra/storage/memory"
	"github.com/m04kA/wellmio-booking/internal/integrations/payments"
	bookingsService "github.com/m04kA/wellmio-booking/internal/service/bookings"
	optionsService "github.com/m04kA/wellmio-booking/internal/service/options"
	timeslotsService "github.com/m04kA/wellmio-booking/internal/service/timeslots"
	createBookingUC "github.com/m04kA/wellmio-booking/internal/usecase/create_booking"
	handlePaymentEventUC "github.com/m04kA/wellmio-booking/internal/usecase/handle_payment_event"
	"github.com/m04kA/wellmio-booking/pkg/logger"
	"github.com/m04kA/wellmio-booking/pkg/metrics"
)

const (
	jwtSecret     = "jwt-test-secret"
	webhookSecret = "whsec_test"
)

var testNow = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return testNow }

type fakeGateway struct {
	mu  sync.Mutex
	err error
	n   int
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req *payments.CheckoutRequest) (*payments.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.n++
	id := fmt.Sprintf("cs_test_%d", g.n)
	return &payments.CheckoutSession{ID: id, URL: "https://checkout.example/" + id}, nil
}

type testServer struct {
	router  *mux.Router
	store   *memory.Store
	gateway *fakeGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.Nop()
	store := memory.NewStore()
	gateway := &fakeGateway{}
	m := metrics.New(prometheus.NewRegistry())

	optionSvc := optionsService.NewService(store.Options(), store.TxManager(), time.UTC, log)
	slotSvc := timeslotsService.NewService(store.Slots(), nil, optionSvc, log).WithTimeProvider(fixedClock{})
	bookingSvc := bookingsService.NewService(store.Bookings(), log)

	createBooking := createBookingUC.NewUseCase(
		slotSvc, store.Bookings(), optionSvc, gateway, store.TxManager(),
		createBookingUC.CheckoutConfig{ProductName: "Massage chair", SuccessURL: "https://s", CancelURL: "https://c"},
		m, log,
	).WithTimeProvider(fixedClock{})

	verifier := payments.NewVerifier(webhookSecret, 5*time.Minute).WithClock(func() time.Time { return testNow })
	paymentEvent := handlePaymentEventUC.NewUseCase(verifier, store.Bookings(), slotSvc, store.TxManager(), nil, m, log)

	router := NewRouter(&Handlers{
		ListTimeslots:       listTimeslotsHandler.NewHandler(slotSvc, log),
		CreateBooking:       createBookingHandler.NewHandler(createBooking, log),
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		PaymentWebhook:      paymentWebhookHandler.NewHandler(paymentEvent, log),
		ListBookingOptions:  listBookingOptionsHandler.NewHandler(optionSvc, log),
		UpsertBookingOption: upsertBookingOptionHandler.NewHandler(optionSvc, log),
		CreateTimeslot:      createTimeslotHandler.NewHandler(slotSvc, log),
		UpdateTimeslot:      updateTimeslotHandler.NewHandler(slotSvc, log),
		DeleteTimeslot:      deleteTimeslotHandler.NewHandler(slotSvc, log),
		ListBookings:        listBookingsHandler.NewHandler(bookingSvc, log),
	}, RouterConfig{
		JWTSecret:      jwtSecret,
		AdminRole:      "admin",
		RequestTimeout: 5 * time.Second,
		Metrics:        m,
		MetricsPath:    "/metrics",
		ServiceName:    "wellmio-test",
	})

	return &testServer{router: router, store: store, gateway: gateway}
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &middleware.Claims{
		Sub:  "admin-1",
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) admin(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, method, path, body, map[string]string{"Authorization": "Bearer " + adminToken(t, "admin")})
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (s *testServer) createSlot(t *testing.T, start time.Time) string {
	t.Helper()
	rec := s.admin(t, http.MethodPost, "/admin/timeslots", map[string]string{
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(30 * time.Minute).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[createTimeslotHandler.SlotResponse](t, rec).ID
}

func webhookHeaders(payload []byte) map[string]string {
	return map[string]string{payments.SignatureHeader: payments.Sign(payload, webhookSecret, testNow)}
}

func eventPayload(eventType, bookingID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","type":%q,"data":{"object":{"id":"cs_test_1","metadata":{"booking_id":%q}}}}`,
		eventType, bookingID,
	))
}

func TestRouter_BookAndPay(t *testing.T) {
	s := newTestServer(t)
	slotID := s.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))

	rec := s.do(t, http.MethodGet, "/timeslots?date=2025-10-15", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	slots := decode[[]listTimeslotsHandler.SlotResponse](t, rec)
	require.Len(t, slots, 1)
	assert.Equal(t, slotID, slots[0].ID)
	assert.Equal(t, "2025-10-15T09:00:00Z", slots[0].StartTime)

	rec = s.do(t, http.MethodPost, "/bookings", map[string]string{
		"slot_id":           slotID,
		"customer_identity": "anna@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	booking := decode[createBookingHandler.BookingResponse](t, rec)
	assert.Equal(t, "pending", booking.PaymentStatus)
	assert.Equal(t, slotID, booking.TimeSlot.ID)
	assert.Equal(t, "https://checkout.example/cs_test_1", booking.EntryURL)

	rec = s.do(t, http.MethodGet, "/timeslots", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	payload := eventPayload(payments.EventCheckoutCompleted, booking.ID)
	rec = s.do(t, http.MethodPost, "/payments/webhook", payload, webhookHeaders(payload))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())

	// повторная доставка
	rec = s.do(t, http.MethodPost, "/payments/webhook", payload, webhookHeaders(payload))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/bookings/"+booking.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[getBookingHandler.BookingStatusResponse](t, rec)
	assert.Equal(t, "succeeded", status.PaymentStatus)

	rec = s.admin(t, http.MethodGet, "/admin/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]listBookingsHandler.BookingResponse](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "anna@example.com", list[0].CustomerIdentity)
	require.NotNil(t, list[0].PaymentSessionID)
	assert.Equal(t, "cs_test_1", *list[0].PaymentSessionID)
}

func TestRouter_CreateBooking_Errors(t *testing.T) {
	s := newTestServer(t)
	slotID := s.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))
	pastSlot := s.createSlot(t, testNow.Add(-2*time.Hour))

	rec := s.do(t, http.MethodPost, "/bookings", map[string]string{"slot_id": slotID, "customer_identity": "first"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{name: "malformed json", body: []byte(`{"slot_id":`), wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: []byte(`{"slot":"x"}`), wantStatus: http.StatusBadRequest},
		{name: "invalid uuid", body: map[string]string{"slot_id": "42", "customer_identity": "a"}, wantStatus: http.StatusBadRequest},
		{name: "missing identity", body: map[string]string{"slot_id": slotID}, wantStatus: http.StatusBadRequest},
		{name: "unknown slot", body: map[string]string{"slot_id": uuid.NewString(), "customer_identity": "a"}, wantStatus: http.StatusNotFound},
		{name: "past slot", body: map[string]string{"slot_id": pastSlot, "customer_identity": "a"}, wantStatus: http.StatusBadRequest},
		{name: "already booked", body: map[string]string{"slot_id": slotID, "customer_identity": "second"}, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/bookings", tt.body, nil)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			errBody := decode[map[string]interface{}](t, rec)
			assert.Equal(t, float64(tt.wantStatus), errBody["code"])
			assert.NotEmpty(t, errBody["message"])
		})
	}
}

func TestRouter_CreateBooking_PaymentFailures(t *testing.T) {
	tests := []struct {
		name       string
		gatewayErr error
		wantStatus int
	}{
		{name: "provider error", gatewayErr: payments.ErrUnavailable, wantStatus: http.StatusInternalServerError},
		{name: "provider timeout", gatewayErr: payments.ErrTimeout, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			slotID := s.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))
			s.gateway.err = tt.gatewayErr

			rec := s.do(t, http.MethodPost, "/bookings", map[string]string{"slot_id": slotID, "customer_identity": "a"}, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)

			rec = s.do(t, http.MethodGet, "/timeslots", nil, nil)
			slots := decode[[]listTimeslotsHandler.SlotResponse](t, rec)
			require.Len(t, slots, 1)
			assert.Equal(t, slotID, slots[0].ID)
		})
	}
}

func TestRouter_ConcurrentBookings(t *testing.T) {
	s := newTestServer(t)
	slotID := s.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))

	const clients = 10
	codes := make(chan int, clients)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := s.do(t, http.MethodPost, "/bookings", map[string]string{
				"slot_id":           slotID,
				"customer_identity": fmt.Sprintf("user-%d@example.com", i),
			}, nil)
			codes <- rec.Code
		}(i)
	}
	wg.Wait()
	close(codes)

	counts := map[int]int{}
	for code := range codes {
		counts[code]++
	}
	assert.Equal(t, 1, counts[http.StatusOK])
	assert.Equal(t, clients-1, counts[http.StatusConflict])
}

func TestRouter_Webhook(t *testing.T) {
	s := newTestServer(t)
	slotID := s.createSlot(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC))

	rec := s.do(t, http.MethodPost, "/bookings", map[string]string{"slot_id": slotID, "customer_identity": "a"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	booking := decode[createBookingHandler.BookingResponse](t, rec)

	payload := eventPayload(payments.EventCheckoutExpired, booking.ID)

	rec = s.do(t, http.MethodPost, "/payments/webhook", payload, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/payments/webhook", payload, map[string]string{
		payments.SignatureHeader: payments.Sign(payload, "wrong", testNow),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	garbage := []byte("not json")
	rec = s.do(t, http.MethodPost, "/payments/webhook", garbage, webhookHeaders(garbage))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// подпись в запасном заголовке
	rec = s.do(t, http.MethodPost, "/payments/webhook", payload, map[string]string{
		payments.FallbackSignatureHeader: payments.Sign(payload, webhookSecret, testNow),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/bookings/"+booking.ID, nil, nil)
	assert.Equal(t, "failed", decode[getBookingHandler.BookingStatusResponse](t, rec).PaymentStatus)

	rec = s.do(t, http.MethodGet, "/timeslots", nil, nil)
	assert.Len(t, decode[[]listTimeslotsHandler.SlotResponse](t, rec), 1)
}

func TestRouter_AdminAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/admin/booking-options", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/admin/booking-options", nil, map[string]string{
		"Authorization": "Bearer " + adminToken(t, "customer"),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.admin(t, http.MethodGet, "/admin/booking-options", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminOptions(t *testing.T) {
	s := newTestServer(t)
	id := uuid.NewString()

	rec := s.admin(t, http.MethodPut, "/admin/booking-options", map[string]string{"id": id, "name": "price", "value": "200"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	opt := decode[listBookingOptionsHandler.OptionResponse](t, rec)
	assert.Equal(t, id, opt.ID)
	assert.Equal(t, "200", opt.Value)

	rec = s.admin(t, http.MethodPut, "/admin/booking-options", map[string]string{"id": uuid.NewString(), "name": "price", "value": "250"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode[listBookingOptionsHandler.OptionResponse](t, rec).ID)

	for _, body := range []map[string]string{
		{"id": "x", "name": "price", "value": "1"},
		{"id": uuid.NewString(), "name": "color", "value": "red"},
		{"id": uuid.NewString(), "name": "price", "value": "-1"},
		{"id": uuid.NewString(), "name": "timezone", "value": "Nowhere/City"},
	} {
		rec = s.admin(t, http.MethodPut, "/admin/booking-options", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec = s.admin(t, http.MethodGet, "/admin/booking-options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[[]listBookingOptionsHandler.OptionResponse](t, rec)
	require.Len(t, opts, 1)
	assert.Equal(t, "250", opts[0].Value)
}

func TestRouter_AdminTimeslots(t *testing.T) {
	s := newTestServer(t)
	start := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	slotID := s.createSlot(t, start)

	rec := s.admin(t, http.MethodPost, "/admin/timeslots", map[string]string{
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(-time.Minute).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.admin(t, http.MethodPost, "/admin/timeslots", map[string]string{"start_time": "tomorrow", "end_time": "later"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.admin(t, http.MethodPut, "/admin/timeslots/"+slotID, map[string]string{
		"start_time": start.Add(time.Hour).Format(time.RFC3339),
		"end_time":   start.Add(90 * time.Minute).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-10-15T10:00:00Z", decode[createTimeslotHandler.SlotResponse](t, rec).StartTime)

	rec = s.admin(t, http.MethodPut, "/admin/timeslots/"+uuid.NewString(), map[string]string{
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/bookings", map[string]string{"slot_id": slotID, "customer_identity": "a"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.admin(t, http.MethodDelete, "/admin/timeslots/"+slotID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.admin(t, http.MethodDelete, "/admin/timeslots/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.admin(t, http.MethodDelete, "/admin/timeslots/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	free := s.createSlot(t, start.Add(5*time.Hour))
	rec = s.admin(t, http.MethodDelete, "/admin/timeslots/"+free, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_ListTimeslots_BadDate(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/timeslots?date=15-10-2025", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
