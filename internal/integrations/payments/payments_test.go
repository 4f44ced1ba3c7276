package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/wellmio-booking/pkg/logger"
)

const testSecret = "whsec_test"

func TestVerifier_Verify(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Unix(1760000000, 0)

	verifier := NewVerifier(testSecret, 5*time.Minute).WithClock(func() time.Time { return now })

	tests := []struct {
		name    string
		payload []byte
		header  string
		wantErr bool
	}{
		{name: "valid", payload: payload, header: Sign(payload, testSecret, now)},
		{
			name:    "second v1 matches",
			payload: payload,
			header:  Sign(payload, testSecret, now) + ",v1=deadbeef",
		},
		{name: "missing header", payload: payload, header: "", wantErr: true},
		{name: "tampered body", payload: []byte(`{"id":"evt_2"}`), header: Sign(payload, testSecret, now), wantErr: true},
		{name: "wrong secret", payload: payload, header: Sign(payload, "other", now), wantErr: true},
		{name: "too old", payload: payload, header: Sign(payload, testSecret, now.Add(-10*time.Minute)), wantErr: true},
		{name: "no timestamp", payload: payload, header: "v1=abcd", wantErr: true},
		{name: "garbage", payload: payload, header: "not-a-signature", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifier.Verify(tt.payload, tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSignature)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifier_ZeroToleranceSkipsAgeCheck(t *testing.T) {
	payload := []byte(`{}`)
	verifier := NewVerifier(testSecret, 0)

	assert.NoError(t, verifier.Verify(payload, Sign(payload, testSecret, time.Unix(1, 0))))
}

func TestParseEvent(t *testing.T) {
	t.Run("metadata booking id", func(t *testing.T) {
		event, err := ParseEvent([]byte(`{"id":"evt_1","type":"checkout.session.expired",` +
			`"data":{"object":{"id":"cs_1","metadata":{"booking_id":"b-1"}}}}`))
		require.NoError(t, err)
		assert.Equal(t, EventCheckoutExpired, event.Type)
		assert.Equal(t, "b-1", event.BookingID())
	})

	t.Run("client reference fallback", func(t *testing.T) {
		event, err := ParseEvent([]byte(`{"type":"checkout.session.completed",` +
			`"data":{"object":{"client_reference_id":"b-2"}}}`))
		require.NoError(t, err)
		assert.Equal(t, "b-2", event.BookingID())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{"type":`))
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})

	t.Run("no type", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{"id":"evt"}`))
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "15000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "sek", r.PostForm.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "b-1", r.PostForm.Get("metadata[booking_id]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_123","url":"https://checkout.example/cs_123"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "sk_test", time.Second, logger.Nop())
		session, err := client.CreateCheckoutSession(context.Background(), &CheckoutRequest{
			AmountMinor: 15000,
			Currency:    "SEK",
			ProductName: "Massage chair session",
			SuccessURL:  "https://wellmio.example/success",
			CancelURL:   "https://wellmio.example/cancel",
			BookingID:   "b-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "cs_123", session.ID)
		assert.Equal(t, "https://checkout.example/cs_123", session.URL)
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad currency"}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "sk_test", time.Second, logger.Nop())
		_, err := client.CreateCheckoutSession(context.Background(), &CheckoutRequest{BookingID: "b-1"})

		assert.ErrorIs(t, err, ErrRejected)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "sk_test", 20*time.Millisecond, logger.Nop())
		_, err := client.CreateCheckoutSession(context.Background(), &CheckoutRequest{BookingID: "b-1"})

		assert.ErrorIs(t, err, ErrTimeout)
	})
}
