package payment_webhook

import (
	"context"

	handlePaymentEvent "github.com/m04kA/wellmio-booking/internal/usecase/handle_payment_event"
)

type PaymentEventUseCase interface {
	Execute(ctx context.Context, req *handlePaymentEvent.Request) (*handlePaymentEvent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
