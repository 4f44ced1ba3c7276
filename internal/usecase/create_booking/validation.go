package create_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// canonicalUUIDLength длина UUID в виде xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
const canonicalUUIDLength = 36

// validateRequest проверяет входные данные и возвращает ID слота
func validateRequest(req *Request) (uuid.UUID, error) {
	if req == nil {
		return uuid.Nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if len(req.SlotID) != canonicalUUIDLength {
		return uuid.Nil, fmt.Errorf("%w: slot_id must be a canonical UUID", ErrInvalidInput)
	}
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: slot_id must be a canonical UUID", ErrInvalidInput)
	}

	identity := strings.TrimSpace(req.CustomerIdentity)
	if identity == "" {
		return uuid.Nil, fmt.Errorf("%w: customer_identity is required", ErrInvalidInput)
	}
	if len(identity) > domain.MaxCustomerIdentityLength {
		return uuid.Nil, fmt.Errorf("%w: customer_identity is longer than %d characters",
			ErrInvalidInput, domain.MaxCustomerIdentityLength)
	}

	return slotID, nil
}
