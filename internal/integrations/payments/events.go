package payments

import (
	"encoding/json"
	"fmt"
)

// Типы событий провайдера, которые обрабатывает сервис
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
	EventPaymentFailed     = "payment_intent.payment_failed"
)

// Event событие webhook
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object EventObject `json:"object"`
	} `json:"data"`
}

// EventObject объект, к которому относится событие (checkout session или payment intent)
type EventObject struct {
	ID                string            `json:"id"`
	ClientReferenceID string            `json:"client_reference_id"`
	Metadata          map[string]string `json:"metadata"`
}

// ParseEvent разбирает тело webhook
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("%w: event type is empty", ErrMalformedEvent)
	}
	return &event, nil
}

// BookingID ID бронирования из metadata, с fallback на client_reference_id
func (e *Event) BookingID() string {
	if id := e.Data.Object.Metadata["booking_id"]; id != "" {
		return id
	}
	return e.Data.Object.ClientReferenceID
}
