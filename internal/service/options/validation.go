package options

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata" // база часовых поясов для образов без системной tzdata

	"github.com/shopspring/decimal"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// validateOption проверяет имя и значение настройки.
// Значение проверяется без пробелов по краям, но сохраняется как передано.
func validateOption(name domain.OptionName, value string) error {
	if !name.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%w: value must not be empty", ErrInvalidValue)
	}
	if len(value) > domain.MaxOptionValueLength {
		return fmt.Errorf("%w: value is longer than %d characters", ErrInvalidValue, domain.MaxOptionValueLength)
	}

	switch {
	case name.IsDecimal():
		amount, err := decimal.NewFromString(trimmed)
		if err != nil || !amount.IsPositive() {
			return fmt.Errorf("%w: %s must be a positive number", ErrInvalidValue, name)
		}
	case name.IsNumeric():
		if _, err := parseCount(trimmed); err != nil {
			return fmt.Errorf("%w: %s %v", ErrInvalidValue, name, err)
		}
	case name == domain.OptionTimezone:
		if _, err := time.LoadLocation(trimmed); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidValue, trimmed)
		}
	case name == domain.OptionCurrency:
		if !isCurrencyCode(trimmed) {
			return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidValue)
		}
	}

	return nil
}

// parseCount разбирает счётную настройку (минуты, дни, количество).
// Допускается десятичная запись без дробной части, например "30.0".
func parseCount(value string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || !d.IsPositive() {
		return 0, errors.New("must be a positive number")
	}
	if !d.IsInteger() {
		return 0, errors.New("must be a whole number, fractional values are not supported")
	}
	if !d.LessThanOrEqual(decimal.NewFromInt(math.MaxInt32)) {
		return 0, errors.New("is too large")
	}
	return int(d.IntPart()), nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
