package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/m04kA/wellmio-booking/internal/api/handlers"
	"github.com/m04kA/wellmio-booking/internal/integrations/payments"
	handlePaymentEvent "github.com/m04kA/wellmio-booking/internal/usecase/handle_payment_event"
)

const (
	msgInvalidBody      = "не удалось прочитать тело запроса"
	msgInvalidSignature = "некорректная подпись"
	msgMalformedEvent   = "некорректное событие"
)

// ReceivedResponse подтверждение приёма события
type ReceivedResponse struct {
	Received bool `json:"received"`
}

type Handler struct {
	useCase PaymentEventUseCase
	logger  Logger
}

func NewHandler(useCase PaymentEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := handlers.ReadBody(r)
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	signature := r.Header.Get(payments.SignatureHeader)
	if signature == "" {
		signature = r.Header.Get(payments.FallbackSignatureHeader)
	}

	result, err := h.useCase.Execute(r.Context(), &handlePaymentEvent.Request{
		Payload:   payload,
		Signature: signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, handlePaymentEvent.ErrInvalidSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, handlePaymentEvent.ErrMalformedEvent):
			h.logger.Warn("POST /payments/webhook - Malformed event: %v", err)
			handlers.RespondBadRequest(w, msgMalformedEvent)

		default:
			h.logger.Error("POST /payments/webhook - Failed to handle event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ReceivedResponse{Received: result.Received})
}
