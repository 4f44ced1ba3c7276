package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPublisher_InvalidURL(t *testing.T) {
	_, err := NewPublisher("http://not-amqp", "wellmio.bookings")

	assert.ErrorIs(t, err, ErrConnect)
}

func TestNopPublisher(t *testing.T) {
	err := NopPublisher{}.Publish(context.Background(), RoutingBookingConfirmed, &BookingEvent{
		BookingID:  "b1",
		OccurredAt: time.Now(),
	})

	assert.NoError(t, err)
}
